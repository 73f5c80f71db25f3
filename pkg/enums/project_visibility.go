package enums

import "fmt"

// ProjectVisibility controls who can discover a project.
type ProjectVisibility string

const (
	ProjectVisibilityPublic  ProjectVisibility = "public"
	ProjectVisibilityPrivate ProjectVisibility = "private"
	ProjectVisibilityTeaser  ProjectVisibility = "teaser"
)

var validProjectVisibilities = []ProjectVisibility{
	ProjectVisibilityPublic,
	ProjectVisibilityPrivate,
	ProjectVisibilityTeaser,
}

// String implements fmt.Stringer.
func (p ProjectVisibility) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProjectVisibility.
func (p ProjectVisibility) IsValid() bool {
	for _, candidate := range validProjectVisibilities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProjectVisibility converts raw input into a ProjectVisibility.
func ParseProjectVisibility(value string) (ProjectVisibility, error) {
	for _, candidate := range validProjectVisibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid project visibility %q", value)
}
