package steps

import (
	"context"

	"github.com/systemstart/deployctl/pkg/api"
	"github.com/systemstart/deployctl/pkg/shell"
	"github.com/systemstart/deployctl/pkg/workspace"
)

// Repos names the repositories a run works against. The target repository
// comes from the parameter set; the build-definition and GitOps manifest
// repositories are fixed per installation.
type Repos struct {
	GitBaseURL string
	DeployRepo string
	GitOpsRepo string
}

const (
	DefaultDeployRepo = "pois_ci"
	DefaultGitOpsRepo = "pois_argocd"
)

// CloneURL builds the clone URL for a repository name.
func (r Repos) CloneURL(name string) string {
	return r.GitBaseURL + "/" + name + ".git"
}

// RunContext is the state shared by one run: the workspace, the validated
// parameters, build metadata and the collaborators steps act through.
// It is read-only once the sequence starts.
type RunContext struct {
	Workspace *workspace.Workspace
	Params    api.Params
	Build     api.BuildInfo
	Repos     Repos
	Registry  string
	Shell     shell.Runner
}

// GuardFunc decides from the parameter set whether a step runs.
type GuardFunc func(api.Params) bool

// Step is one named unit of orchestration work with an optional guard.
// A nil When always runs. Steps are immutable once the sequence is built.
type Step struct {
	Name string
	When GuardFunc
	Run  func(ctx context.Context, rc *RunContext) error
}

// ShouldRun evaluates the guard against the parameter set.
func (s Step) ShouldRun(p api.Params) bool {
	return s.When == nil || s.When(p)
}
