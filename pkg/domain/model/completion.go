package model

import "strings"

// Status is a build's terminal result as reported by Jenkins.
type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusUnstable Status = "UNSTABLE"
	StatusFailure  Status = "FAILURE"
	StatusAborted  Status = "ABORTED"
	StatusNotBuilt Status = "NOT_BUILT"
)

// ParseStatus normalizes a raw result string into a Status. Unknown values
// pass through uppercased and simply never qualify.
func ParseStatus(s string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(s)))
}

// Qualifies reports whether this result should produce a deploy event.
// UNSTABLE counts as shipped: a pipeline can deploy even when a post-build
// step degrades the result.
func (x Status) Qualifies() bool {
	return x == StatusSuccess || x == StatusUnstable
}

// JobCompletion is one finished build: the environment snapshot it ran
// with and its final result. It is the unit of work handed to the notifier.
type JobCompletion struct {
	Env    EnvContext
	Status Status
}
