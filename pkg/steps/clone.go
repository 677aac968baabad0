package steps

import (
	"context"
	"fmt"
)

// CloneRepos acquires the build-definition repository, the target
// repository and the GitOps manifest repository, each cloned into the
// workspace root under its own name.
func CloneRepos() Step {
	return Step{
		Name: "Clone Repos",
		Run: func(ctx context.Context, rc *RunContext) error {
			names := []string{rc.Repos.DeployRepo, rc.Params.Repo, rc.Repos.GitOpsRepo}
			for _, name := range names {
				url := rc.Repos.CloneURL(name)
				if _, err := rc.Shell.Run(ctx, rc.Workspace.Root, "git", "clone", url, name); err != nil {
					return fmt.Errorf("cloning %s: %w", name, err)
				}
			}
			return nil
		},
	}
}
