package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/systemstart/deployctl/pkg/api"
	"github.com/systemstart/deployctl/pkg/notify"
	"github.com/systemstart/deployctl/pkg/steps"
)

// notifyTimeout bounds the terminal notification. It uses its own budget
// because the run context may already be expired when a run times out.
const notifyTimeout = 15 * time.Second

// New assembles the fixed step sequence of a run. Steps run strictly in
// this order; only the deploy step carries a guard.
func New() []steps.Step {
	return []steps.Step{
		steps.EnvironmentCheck(),
		steps.CleanUp(),
		steps.CloneRepos(),
		steps.CheckoutBranch(),
		steps.BuildAndPush(),
		steps.DeployToKubernetes(),
	}
}

// Execute runs the sequence in order against rc, halting on the first
// failed step, and sends exactly one notification with the terminal
// outcome before returning. The run's error is returned regardless of
// whether the notification could be delivered.
func Execute(ctx context.Context, rc *steps.RunContext, sequence []steps.Step, notifier notify.Notifier) error {
	runErr := runSteps(ctx, rc, sequence)

	event := api.NotificationEvent{
		Outcome:     api.OutcomeSuccess,
		JobName:     rc.Build.JobName,
		BuildNumber: rc.Build.BuildNumber,
		Repo:        rc.Params.Repo,
		Projects:    rc.Params.Projects,
		BuildMode:   rc.Params.BuildMode,
		ConsoleURL:  rc.Build.ConsoleURL,
	}
	if runErr != nil {
		event.Outcome = api.OutcomeFailure
		event.ErrorDetail = runErr.Error()
	}

	nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := notifier.Notify(nctx, event); err != nil {
		// Delivery is best-effort and never changes the run's outcome.
		slog.Error("notification delivery failed", "error", err)
	}

	return runErr
}

// runSteps evaluates each step's guard and runs the gated actions in
// order. A skipped step counts as a vacuous success. The first failure
// halts the sequence; the failing step's side effects are left in place
// for post-mortem inspection.
func runSteps(ctx context.Context, rc *steps.RunContext, sequence []steps.Step) error {
	for _, step := range sequence {
		if !step.ShouldRun(rc.Params) {
			slog.Info("skipping step", "step", step.Name, "buildMode", rc.Params.BuildMode)
			continue
		}

		slog.Info("running step", "step", step.Name)
		if err := step.Run(ctx, rc); err != nil {
			slog.Error("step failed", "step", step.Name, "error", err)
			return fmt.Errorf("step %q failed: %w", step.Name, err)
		}
		slog.Info("step completed", "step", step.Name)
	}
	return nil
}
