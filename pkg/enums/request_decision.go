package enums

import "fmt"

// RequestDecision is the action an owner takes on a pending join request.
type RequestDecision string

const (
	RequestDecisionAccept RequestDecision = "accept"
	RequestDecisionReject RequestDecision = "reject"
)

var validRequestDecisions = []RequestDecision{
	RequestDecisionAccept,
	RequestDecisionReject,
}

// String implements fmt.Stringer.
func (r RequestDecision) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RequestDecision.
func (r RequestDecision) IsValid() bool {
	for _, candidate := range validRequestDecisions {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRequestDecision converts raw input into a RequestDecision.
func ParseRequestDecision(value string) (RequestDecision, error) {
	for _, candidate := range validRequestDecisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request decision %q", value)
}
