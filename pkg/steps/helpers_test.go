package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/deployctl/pkg/api"
	"github.com/systemstart/deployctl/pkg/workspace"
)

type call struct {
	dir  string
	name string
	args []string
}

func (c call) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}

// fakeRunner records every invocation and fails commands whose rendered
// form starts with a configured prefix.
type fakeRunner struct {
	calls []call
	fail  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	c := call{dir: dir, name: name, args: args}
	f.calls = append(f.calls, c)
	for prefix, err := range f.fail {
		if strings.HasPrefix(c.String(), prefix) {
			return "", err
		}
	}
	return "", nil
}

// testRunContext builds a RunContext over a fresh temp workspace with the
// given repository directories pre-created.
func testRunContext(t *testing.T, params api.Params, runner *fakeRunner, repoDirs ...string) *RunContext {
	t.Helper()

	w, err := workspace.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range repoDirs {
		if err := os.MkdirAll(filepath.Join(w.Root, d), 0o750); err != nil {
			t.Fatal(err)
		}
	}

	return &RunContext{
		Workspace: w,
		Params:    params,
		Build: api.BuildInfo{
			Environment: api.DefaultEnvironment,
			JobName:     "pois-staging",
			BuildNumber: "42",
			ConsoleURL:  "https://ci.example.com/job/pois-staging/42/console",
		},
		Repos: Repos{
			GitBaseURL: "https://git.example.com/platform",
			DeployRepo: DefaultDeployRepo,
			GitOpsRepo: DefaultGitOpsRepo,
		},
		Registry: DefaultRegistry,
		Shell:    runner,
	}
}

func testParams(t *testing.T, raw api.RawParams) api.Params {
	t.Helper()
	p, err := api.ParseParams(raw)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func assertCalls(t *testing.T, calls []call, want []string) {
	t.Helper()
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d:\n got: %v\nwant: %v", len(calls), len(want), calls, want)
	}
	for i, c := range calls {
		if c.String() != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, c.String(), want[i])
		}
	}
}
