package steps

import (
	"context"
	"fmt"
)

// CheckoutBranch switches the build-definition and target repositories to
// the release branch. The GitOps repository stays on its primary branch.
// A branch missing on the remote fails the run here, before any build work.
func CheckoutBranch() Step {
	return Step{
		Name: "Checkout Branch",
		Run: func(ctx context.Context, rc *RunContext) error {
			for _, name := range []string{rc.Repos.DeployRepo, rc.Params.Repo} {
				dir := rc.Workspace.Dir(name)
				if _, err := rc.Shell.Run(ctx, dir, "git", "checkout", rc.Params.ReleaseBranch); err != nil {
					return fmt.Errorf("checking out %s in %s: %w", rc.Params.ReleaseBranch, name, err)
				}
			}
			return nil
		},
	}
}
