package enums

import "fmt"

// PlanType distinguishes how a provider pays for lead credits.
type PlanType string

const (
	PlanTypePayPerLead   PlanType = "pay_per_lead"
	PlanTypeSubscription PlanType = "subscription"
)

var validPlanTypes = []PlanType{
	PlanTypePayPerLead,
	PlanTypeSubscription,
}

// String implements fmt.Stringer.
func (p PlanType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PlanType.
func (p PlanType) IsValid() bool {
	for _, candidate := range validPlanTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanType converts raw input into a PlanType.
func ParsePlanType(value string) (PlanType, error) {
	for _, candidate := range validPlanTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan type %q", value)
}
