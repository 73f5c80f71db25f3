package enums

import "fmt"

// MembershipStatus captures the lifecycle of a project membership row.
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusAccepted MembershipStatus = "accepted"
	MembershipStatusRejected MembershipStatus = "rejected"
)

var validMembershipStatuses = []MembershipStatus{
	MembershipStatusPending,
	MembershipStatusAccepted,
	MembershipStatusRejected,
}

// String implements fmt.Stringer.
func (m MembershipStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipStatus.
func (m MembershipStatus) IsValid() bool {
	for _, candidate := range validMembershipStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipStatus converts raw input into a MembershipStatus.
func ParseMembershipStatus(value string) (MembershipStatus, error) {
	for _, candidate := range validMembershipStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership status %q", value)
}
