package enums

import "fmt"

// JoinRequestStatus captures the lifecycle of a join request.
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusAccepted JoinRequestStatus = "accepted"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

var validJoinRequestStatuses = []JoinRequestStatus{
	JoinRequestStatusPending,
	JoinRequestStatusAccepted,
	JoinRequestStatusRejected,
}

// String implements fmt.Stringer.
func (j JoinRequestStatus) String() string {
	return string(j)
}

// IsValid reports whether the value matches a known JoinRequestStatus.
func (j JoinRequestStatus) IsValid() bool {
	for _, candidate := range validJoinRequestStatuses {
		if candidate == j {
			return true
		}
	}
	return false
}

// ParseJoinRequestStatus converts raw input into a JoinRequestStatus.
func ParseJoinRequestStatus(value string) (JoinRequestStatus, error) {
	for _, candidate := range validJoinRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid join request status %q", value)
}
