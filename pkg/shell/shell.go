package shell

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// outputTailLines bounds how much subprocess output a failure reason carries.
const outputTailLines = 20

// Runner executes an external command in a working directory and returns
// its combined stdout/stderr. A non-zero exit status is an error carrying
// a tail of the output; there are no retries at this level.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec and the inherited process
// environment. Commands are expected to mutate the filesystem under dir
// (clones, checkouts, build artifacts).
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	slog.Info("running command", "command", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return out.String(), fmt.Errorf("%s aborted: %w", name, ctx.Err())
		}
		return out.String(), fmt.Errorf("%s failed: %w\noutput: %s", name, err, Tail(out.String(), outputTailLines))
	}
	return out.String(), nil
}

// Tail returns at most n lines from the end of s, trimmed of trailing
// whitespace.
func Tail(s string, n int) string {
	s = strings.TrimRight(s, "\n\t ")
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
