package model

import (
	"sort"
	"strings"
)

// Environment variable names Jenkins injects into every build. The field
// resolvers read these directly; user-defined variables are only reachable
// through ${VAR} templates.
const (
	EnvBuildNumber = "BUILD_NUMBER"
	EnvJobName     = "JOB_NAME"
	EnvBuildURL    = "BUILD_URL"
	EnvWorkspace   = "WORKSPACE"
	EnvGitCommit   = "GIT_COMMIT"
	EnvGitBranch   = "GIT_BRANCH"
)

// EnvContext is a read-only snapshot of a build's environment variables,
// taken when the build completes.
type EnvContext map[string]string

// NewEnvContext parses "KEY=VALUE" entries as produced by os.Environ.
// Entries without "=" are dropped.
func NewEnvContext(environ []string) EnvContext {
	env := make(EnvContext, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Lookup returns the value for key and whether the key is present.
func (x EnvContext) Lookup(key string) (string, bool) {
	v, ok := x[key]
	return v, ok
}

// Get returns the value for key, or "" when the key is absent.
func (x EnvContext) Get(key string) string {
	return x[key]
}

// Keys returns all variable names in sorted order for stable debug output.
func (x EnvContext) Keys() []string {
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
