package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/systemstart/deployctl/pkg/api"
	"github.com/systemstart/deployctl/pkg/logging"
	"github.com/systemstart/deployctl/pkg/notify"
	"github.com/systemstart/deployctl/pkg/pipeline"
	"github.com/systemstart/deployctl/pkg/shell"
	"github.com/systemstart/deployctl/pkg/steps"
	"github.com/systemstart/deployctl/pkg/workspace"
)

var version = "dev"

const (
	_ = iota
	exitRunFailed
	exitDotenvError
	exitInvalidParameters
	exitWorkspaceNotSpecified
	exitWorkspaceResolveFailed
	exitGitBaseURLNotSpecified
)

var (
	releaseBranch string
	jiraLabel     string
	repo          string
	projects      string
	projectName   string
	buildMode     string
	workspaceRoot string
	gitBaseURL    string
	webhookURL    string
	runTimeout    time.Duration
	loggingType   string
	logLevel      string
	showVersion   bool
)

func init() {
	flag.StringVar(
		&releaseBranch,
		"release-branch",
		"",
		"branch to build from (required)")
	flag.StringVar(
		&jiraLabel,
		"jira-label",
		"",
		"issue label associated with this release")
	flag.StringVar(
		&repo,
		"repo",
		api.DefaultRepo,
		"target repository to build")
	flag.StringVar(
		&projects,
		"projects",
		"",
		"comma-separated projects to build (empty = all)")
	flag.StringVar(
		&projectName,
		"project-name",
		"",
		"image name override (defaults to repo)")
	flag.StringVar(
		&buildMode,
		"build-mode",
		api.DefaultBuildMode,
		"CI (build only) or CICD (build and deploy)")
	flag.StringVar(
		&workspaceRoot,
		"workspace",
		"",
		"workspace root owned by this run")
	flag.StringVar(
		&gitBaseURL,
		"git-base-url",
		"",
		"base URL for repository clones (or GIT_BASE_URL)")
	flag.StringVar(
		&webhookURL,
		"webhook-url",
		"",
		"notification sink URL (or WEBHOOK_URL)")
	flag.DurationVar(
		&runTimeout,
		"timeout",
		60*time.Minute,
		"run-level timeout for the whole sequence")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Setup(os.Stdout, loggingType, logLevel)

	includeEnv()

	params := loadParams()
	rc := buildRunContext(params)
	notifier := buildNotifier()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := pipeline.Execute(ctx, rc, pipeline.New(), notifier); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(exitRunFailed)
	}

	slog.Info("done")
}

func loadParams() api.Params {
	params, err := api.ParseParams(api.RawParams{
		ReleaseBranch: releaseBranch,
		JiraLabel:     jiraLabel,
		Repo:          repo,
		Projects:      projects,
		ProjectName:   projectName,
		BuildMode:     buildMode,
	})
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(exitInvalidParameters)
	}
	return params
}

func buildRunContext(params api.Params) *steps.RunContext {
	if workspaceRoot == "" {
		slog.Error("-workspace not set")
		os.Exit(exitWorkspaceNotSpecified)
	}
	w, err := workspace.New(workspaceRoot)
	if err != nil {
		slog.Error("failed to resolve workspace", "workspace", workspaceRoot, "error", err)
		os.Exit(exitWorkspaceResolveFailed)
	}

	baseURL := firstOf(gitBaseURL, os.Getenv("GIT_BASE_URL"))
	if baseURL == "" {
		slog.Error("-git-base-url not set and GIT_BASE_URL empty")
		os.Exit(exitGitBaseURLNotSpecified)
	}

	return &steps.RunContext{
		Workspace: w,
		Params:    params,
		Build: api.BuildInfo{
			Environment: api.DefaultEnvironment,
			JobName:     os.Getenv("JOB_NAME"),
			BuildNumber: os.Getenv("BUILD_NUMBER"),
			ConsoleURL:  os.Getenv("BUILD_URL"),
		},
		Repos: steps.Repos{
			GitBaseURL: baseURL,
			DeployRepo: firstOf(os.Getenv("DEPLOY_REPO"), steps.DefaultDeployRepo),
			GitOpsRepo: firstOf(os.Getenv("GITOPS_REPO"), steps.DefaultGitOpsRepo),
		},
		Registry: firstOf(os.Getenv("REGISTRY_URL"), steps.DefaultRegistry),
		Shell:    shell.ExecRunner{},
	}
}

func buildNotifier() notify.Notifier {
	url := firstOf(webhookURL, os.Getenv("WEBHOOK_URL"))
	if url == "" {
		slog.Warn("no webhook URL configured, notifications go to the log only")
		return logNotifier{}
	}
	return notify.NewWebhook(url)
}

// logNotifier writes the rendered notification to the run log when no
// webhook sink is configured.
type logNotifier struct{}

func (logNotifier) Notify(_ context.Context, event api.NotificationEvent) error {
	msg, err := notify.Message(event)
	if err != nil {
		return err
	}
	slog.Info("notification", "outcome", event.Outcome, "message", msg)
	return nil
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
