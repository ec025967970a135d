package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/model"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/domain/types"
	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/utils/envsubst"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// buildDeployEvent assembles the deploy event for a qualifying completion.
// Every overridable field is resolved override-first, then through its
// fallbacks in a fixed order. Missing optional metadata degrades to a
// fallback or omission; only a context without the build identity fields
// is an error.
func (uc *notifyUseCase) buildDeployEvent(ctx context.Context, config *model.PublisherConfig, env model.EnvContext) (*model.DeployEvent, error) {
	ctxlog.From(ctx).Debug("Building deploy event", "env_keys", env.Keys())

	buildNumber, ok := env.Lookup(model.EnvBuildNumber)
	if !ok {
		return nil, goerr.New("build context is missing BUILD_NUMBER")
	}
	jobName, ok := env.Lookup(model.EnvJobName)
	if !ok {
		return nil, goerr.New("build context is missing JOB_NAME")
	}

	commit := uc.resolveCommit(ctx, env)

	return &model.DeployEvent{
		DedupID:      uc.newID(),
		DeployNumber: buildNumber,
		DeployURL:    resolveDeployURL(config.DeployURL, env, jobName, buildNumber),
		DeployedAt:   uc.clock().UTC().Format(time.RFC3339),
		Description:  resolveDescription(config.Description, env, commit),
		Environment:  resolveEnvironment(config.Environment, env),
		Service:      resolveService(config.Service, env, jobName),
		Deployer:     resolveDeployer(config.Deployer, env),
		Commit:       commit,
	}, nil
}

// resolveDeployURL picks the deploy URL: the override template, then the
// build's absolute URL, then a placeholder host with the build's relative
// path for installations that never set their Jenkins location.
func resolveDeployURL(override *string, env model.EnvContext, jobName, buildNumber string) string {
	if v := envsubst.ExpandPtr(override, env); v != nil {
		return *v
	}
	if buildURL, ok := env.Lookup(model.EnvBuildURL); ok {
		return buildURL
	}
	return fmt.Sprintf("http://jenkins-location-is-not-set.local/job/%s/%s/", jobName, buildNumber)
}

// resolveEnvironment picks the environment name: the override template,
// then the literal "Production".
func resolveEnvironment(override *string, env model.EnvContext) string {
	if v := envsubst.ExpandPtr(override, env); v != nil {
		return *v
	}
	return "Production"
}

// resolveService picks the service identifier: the override template, then
// the job name behind a fixed prefix following the kubernetes convention.
func resolveService(override *string, env model.EnvContext, jobName string) string {
	if v := envsubst.ExpandPtr(override, env); v != nil {
		return *v
	}
	return types.AgentName + ":" + jobName
}

// resolveDescription picks the description: the override template, then
// the recovered commit message, then a default naming the build number.
func resolveDescription(override *string, env model.EnvContext, commit *model.Commit) string {
	if v := envsubst.ExpandPtr(override, env); v != nil {
		return *v
	}
	if commit != nil && commit.Message != nil {
		return *commit.Message
	}
	return envsubst.Expand("Jenkins Deploy #${BUILD_NUMBER}", env)
}

// resolveDeployer expands the configured deployer fields, or yields nil
// when none is configured so the sub-object is omitted entirely.
func resolveDeployer(config model.DeployerConfig, env model.EnvContext) *model.Deployer {
	deployer := &model.Deployer{
		ID:    envsubst.ExpandPtr(config.ID, env),
		Name:  envsubst.ExpandPtr(config.Name, env),
		Email: envsubst.ExpandPtr(config.Email, env),
	}
	if deployer.IsZero() {
		return nil
	}
	return deployer
}

// resolveCommit builds the commit sub-object when the build carries a
// commit hash. The message is best-effort: any failure to recover it is
// logged as a warning and the field omitted.
func (uc *notifyUseCase) resolveCommit(ctx context.Context, env model.EnvContext) *model.Commit {
	sha, ok := env.Lookup(model.EnvGitCommit)
	if !ok {
		return nil
	}

	commit := &model.Commit{SHA: sha}
	if branch, ok := env.Lookup(model.EnvGitBranch); ok {
		commit.Branch = &branch
	}

	logger := ctxlog.From(ctx)
	workspace, ok := env.Lookup(model.EnvWorkspace)
	if !ok {
		logger.Warn("Build has no workspace, commit message unavailable",
			"sha", sha,
		)
		return commit
	}

	subject, err := uc.commits.Subject(ctx, workspace)
	if err != nil {
		logger.Warn("Failed to resolve commit message",
			"error", err,
			"workspace", workspace,
			"sha", sha,
		)
		return commit
	}
	if subject == "" {
		// Nothing on stdout, as happens when the command failed. The
		// event goes out without a message.
		return commit
	}
	commit.Message = &subject

	return commit
}
