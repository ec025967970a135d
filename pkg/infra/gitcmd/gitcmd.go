// Package gitcmd recovers commit metadata by running git inside a build's
// workspace directory.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
)

// Result captures one command run: the exit code plus both streams read
// in full after the process exits.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// subjectArgv prints the subject line of the checked-out commit. The diff
// git appends after it is discarded by the first-line cut in Subject.
var subjectArgv = []string{"git", "show", "--pretty=%s"}

// Client shells out to git to resolve commit metadata. It satisfies
// interfaces.CommitResolver.
type Client struct {
	argv []string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithCommand replaces the command run to read the commit subject.
func WithCommand(argv ...string) Option {
	return func(c *Client) {
		c.argv = argv
	}
}

// New creates a git-backed commit resolver
func New(opts ...Option) *Client {
	c := &Client{
		argv: subjectArgv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subject returns the one-line subject of the commit checked out in dir.
// A nonzero exit is logged as a warning and whatever stdout was captured
// is still used; only failing to run the command at all is an error.
func (c *Client) Subject(ctx context.Context, dir string) (string, error) {
	result, err := c.Run(ctx, dir)
	if err != nil {
		return "", err
	}

	if result.ExitCode != 0 {
		ctxlog.From(ctx).Warn("Commit subject command failed, keeping captured output",
			"command", strings.Join(c.argv, " "),
			"exit_code", result.ExitCode,
			"stderr", result.Stderr,
		)
	}

	line, _, _ := strings.Cut(result.Stdout, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Run executes the configured command in dir and captures its outcome.
// A nonzero exit is part of the Result, not an error.
func (c *Client) Run(ctx context.Context, dir string) (*Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("workspace directory is not set")
	}

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Dir = dir
	// Prevent git from prompting for credentials interactively.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %q in %s: %w", strings.Join(c.argv, " "), dir, err)
		}
	}

	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
