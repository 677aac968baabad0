package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BuildEntryPoint is the build-definition script expected at the root of
// the deployment repository checkout.
const BuildEntryPoint = "build.py"

// BuildAndPush invokes the external build tool from inside the
// build-definition repository with positional arguments: environment,
// build mode, target repository, then the project list. An empty project
// list is omitted, meaning all projects.
func BuildAndPush() Step {
	return Step{
		Name: "Build and Push Registry",
		Run: func(ctx context.Context, rc *RunContext) error {
			return rc.Workspace.Enter(rc.Repos.DeployRepo, func(dir string) error {
				if _, err := os.Stat(filepath.Join(dir, BuildEntryPoint)); err != nil {
					return fmt.Errorf("build entry point %s not found in %s checkout: %w", BuildEntryPoint, rc.Repos.DeployRepo, err)
				}

				args := []string{BuildEntryPoint, rc.Build.Environment, rc.Params.BuildMode, rc.Params.Repo}
				args = append(args, rc.Params.Projects...)

				if _, err := rc.Shell.Run(ctx, dir, "python3", args...); err != nil {
					return fmt.Errorf("build script failed: %w", err)
				}
				return nil
			})
		},
	}
}
