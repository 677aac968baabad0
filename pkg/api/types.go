package api

const (
	// BuildModeCI builds only; the deploy step is skipped.
	BuildModeCI = "CI"
	// BuildModeCICD builds and then updates the GitOps manifest repository.
	BuildModeCICD = "CICD"

	DefaultRepo        = "pois"
	DefaultBuildMode   = BuildModeCICD
	DefaultEnvironment = "Staging"
)

// RawParams holds invocation values exactly as supplied, before defaults
// and validation are applied.
type RawParams struct {
	ReleaseBranch string
	JiraLabel     string
	Repo          string
	Projects      string // comma-separated, empty means all
	ProjectName   string
	BuildMode     string
}

// Params is the validated parameter set for one run.
type Params struct {
	ReleaseBranch string
	JiraLabel     string
	Repo          string
	Projects      []string
	ProjectName   string
	BuildMode     string
}

// BuildInfo identifies one run within the hosting automation system.
// It is created at run start and read-only afterwards.
type BuildInfo struct {
	Environment string
	JobName     string
	BuildNumber string
	ConsoleURL  string
}

// Outcome is the terminal result of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "Success"
	OutcomeFailure Outcome = "Fail"
)

// NotificationEvent carries the terminal outcome of a run to the
// notification sink. Exactly one is produced per run.
type NotificationEvent struct {
	Outcome     Outcome
	JobName     string
	BuildNumber string
	Repo        string
	Projects    []string
	BuildMode   string
	ErrorDetail string
	ConsoleURL  string
}
