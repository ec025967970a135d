package model

import (
	"strconv"
	"strings"
)

// Build phases reported by the Jenkins notification plugin. Only FINALIZED
// carries a terminal status worth publishing.
const (
	PhaseQueued    = "QUEUED"
	PhaseStarted   = "STARTED"
	PhaseCompleted = "COMPLETED"
	PhaseFinalized = "FINALIZED"
)

// BuildNotification is the job-state payload the Jenkins notification
// plugin POSTs on build phase changes.
type BuildNotification struct {
	Name  string    `json:"name"`
	URL   string    `json:"url"`
	Build BuildInfo `json:"build"`
}

// BuildInfo is the build section of a notification.
type BuildInfo struct {
	FullURL    string            `json:"full_url"`
	Number     int               `json:"number"`
	Phase      string            `json:"phase"`
	Status     string            `json:"status"`
	URL        string            `json:"url"`
	SCM        SCMInfo           `json:"scm"`
	Parameters map[string]string `json:"parameters"`
}

// SCMInfo is the source control section of a notification.
type SCMInfo struct {
	URL    string `json:"url"`
	Branch string `json:"branch"`
	Commit string `json:"commit"`
}

// Finalized reports whether this notification marks the terminal phase of
// a build. Earlier phases are acknowledged and ignored.
func (x *BuildNotification) Finalized() bool {
	return strings.EqualFold(x.Build.Phase, PhaseFinalized)
}

// Completion converts the notification into the environment snapshot and
// status the notifier consumes. Build parameters are copied first; the
// derived Jenkins variables overwrite same-named parameters.
func (x *BuildNotification) Completion() JobCompletion {
	env := make(EnvContext, len(x.Build.Parameters)+5)
	for k, v := range x.Build.Parameters {
		env[k] = v
	}

	env[EnvJobName] = x.Name
	env[EnvBuildNumber] = strconv.Itoa(x.Build.Number)
	if x.Build.FullURL != "" {
		env[EnvBuildURL] = x.Build.FullURL
	}
	if x.Build.SCM.Commit != "" {
		env[EnvGitCommit] = x.Build.SCM.Commit
	}
	if x.Build.SCM.Branch != "" {
		env[EnvGitBranch] = x.Build.SCM.Branch
	}

	return JobCompletion{
		Env:    env,
		Status: ParseStatus(x.Build.Status),
	}
}
