package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/systemstart/deployctl/pkg/api"
	"github.com/systemstart/deployctl/pkg/manifest"
)

// DefaultRegistry is the image registry referenced by the manifests.
const DefaultRegistry = "vmapi/vml-s2"

// DeployToKubernetes updates the image tags in the GitOps manifest
// repository, commits and pushes. It only runs when the build mode
// requests a deploy. Re-running with no pending manifest changes is a
// no-op success; a rejected push is fatal.
func DeployToKubernetes() Step {
	return Step{
		Name: "Deploy to Kubernetes",
		When: api.Params.DeployRequested,
		Run: func(ctx context.Context, rc *RunContext) error {
			return rc.Workspace.Enter(rc.Repos.GitOpsRepo, func(dir string) error {
				image := fmt.Sprintf("%s:%s.%s", rc.Registry, strings.ToLower(rc.Params.ProjectName), rc.Build.BuildNumber)
				if err := manifest.UpdateImages(dir, rc.Params.Repo, rc.Build.Environment, image); err != nil {
					return fmt.Errorf("updating manifests: %w", err)
				}

				if _, err := rc.Shell.Run(ctx, dir, "git", "add", "-A"); err != nil {
					return fmt.Errorf("staging manifests: %w", err)
				}

				// git diff --cached --quiet exits 0 when the index is clean,
				// so success here means there is nothing to deploy.
				if _, err := rc.Shell.Run(ctx, dir, "git", "diff", "--cached", "--quiet"); err == nil {
					slog.Info("no manifest changes, skipping commit and push", "repo", rc.Repos.GitOpsRepo)
					return nil
				}

				msg := fmt.Sprintf("Update %s %s deployments: build %s (%s)",
					rc.Params.Repo, strings.ToLower(rc.Build.Environment), rc.Build.BuildNumber, rc.Params.ReleaseBranch)
				if _, err := rc.Shell.Run(ctx, dir, "git", "commit", "-m", msg); err != nil {
					return fmt.Errorf("committing manifests: %w", err)
				}

				if _, err := rc.Shell.Run(ctx, dir, "git", "push"); err != nil {
					return fmt.Errorf("pushing manifests: %w", err)
				}
				return nil
			})
		},
	}
}
