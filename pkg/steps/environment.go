package steps

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// requiredTools are the external binaries the later steps shell out to.
var requiredTools = []struct {
	name       string
	versionArg string
}{
	{"git", "--version"},
	{"python3", "--version"},
}

// EnvironmentCheck reports the presence and version of the external tools
// the run depends on. The step is purely diagnostic: a missing tool is
// logged and the run continues, failing later at the step that needs it.
func EnvironmentCheck() Step {
	return Step{
		Name: "Environment Check",
		Run: func(ctx context.Context, rc *RunContext) error {
			for _, tool := range requiredTools {
				path, err := exec.LookPath(tool.name)
				if err != nil {
					slog.Warn("required tool not found in PATH", "tool", tool.name)
					continue
				}

				out, err := rc.Shell.Run(ctx, "", tool.name, tool.versionArg)
				if err != nil {
					slog.Warn("could not read tool version", "tool", tool.name, "error", err)
					continue
				}
				slog.Info("tool available", "tool", tool.name, "path", path, "version", strings.TrimSpace(out))
			}
			return nil
		},
	}
}
