package enums

import "fmt"

// ProjectStatus captures the lifecycle of a project.
type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusArchived   ProjectStatus = "archived"
)

var validProjectStatuses = []ProjectStatus{
	ProjectStatusOpen,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusArchived,
}

// String implements fmt.Stringer.
func (p ProjectStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProjectStatus.
func (p ProjectStatus) IsValid() bool {
	for _, candidate := range validProjectStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProjectStatus converts raw input into a ProjectStatus.
func ParseProjectStatus(value string) (ProjectStatus, error) {
	for _, candidate := range validProjectStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid project status %q", value)
}
