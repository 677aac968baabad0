package api

import "strings"

// ParseParams applies defaults to the raw invocation values, splits the
// projects list, and validates the result. Unknown build modes are rejected
// here, at input time, never at use time.
func ParseParams(raw RawParams) (Params, error) {
	p := Params{
		ReleaseBranch: strings.TrimSpace(raw.ReleaseBranch),
		JiraLabel:     strings.TrimSpace(raw.JiraLabel),
		Repo:          strings.TrimSpace(raw.Repo),
		Projects:      SplitProjects(raw.Projects),
		ProjectName:   strings.TrimSpace(raw.ProjectName),
		BuildMode:     strings.TrimSpace(raw.BuildMode),
	}

	if p.Repo == "" {
		p.Repo = DefaultRepo
	}
	if p.ProjectName == "" {
		p.ProjectName = p.Repo
	}
	if p.BuildMode == "" {
		p.BuildMode = DefaultBuildMode
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// SplitProjects parses a comma-separated project list, trimming surrounding
// whitespace and dropping empty entries. An empty result means "all projects".
func SplitProjects(s string) []string {
	var projects []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		projects = append(projects, part)
	}
	return projects
}
