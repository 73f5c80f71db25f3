package enums

import "fmt"

// MeetingStatus captures whether a meeting is still happening.
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCanceled  MeetingStatus = "canceled"
)

var validMeetingStatuses = []MeetingStatus{
	MeetingStatusScheduled,
	MeetingStatusCanceled,
}

// String implements fmt.Stringer.
func (m MeetingStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MeetingStatus.
func (m MeetingStatus) IsValid() bool {
	for _, candidate := range validMeetingStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMeetingStatus converts raw input into a MeetingStatus.
func ParseMeetingStatus(value string) (MeetingStatus, error) {
	for _, candidate := range validMeetingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meeting status %q", value)
}
