package api

import "fmt"

var validBuildModes = map[string]bool{
	BuildModeCI:   true,
	BuildModeCICD: true,
}

// Validate checks the parameter set for errors.
func (p Params) Validate() error {
	if p.ReleaseBranch == "" {
		return fmt.Errorf("releaseBranch is required")
	}
	if p.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	if !validBuildModes[p.BuildMode] {
		return fmt.Errorf("buildMode %q is not valid (valid: %s, %s)", p.BuildMode, BuildModeCI, BuildModeCICD)
	}
	return nil
}

// DeployRequested reports whether the run should update the GitOps
// manifest repository after a successful build.
func (p Params) DeployRequested() bool {
	return p.BuildMode == BuildModeCICD
}
