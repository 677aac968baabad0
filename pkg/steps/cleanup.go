package steps

import "context"

// CleanUp resets the workspace root so the run starts from an empty tree.
// Workspace hygiene is a precondition for a reproducible build; a failed
// reset halts the run before anything is cloned.
func CleanUp() Step {
	return Step{
		Name: "Clean Up",
		Run: func(_ context.Context, rc *RunContext) error {
			return rc.Workspace.Reset()
		},
	}
}
