package enums

import "fmt"

// AnalyticsEventType is the canonical event name for analytics routing.
type AnalyticsEventType string

const (
	AnalyticsEventProviderProfileViewed AnalyticsEventType = "provider_profile_viewed"
	AnalyticsEventProviderContactClick  AnalyticsEventType = "provider_contact_clicked"
	AnalyticsEventLeadCreated           AnalyticsEventType = "lead_created"
	AnalyticsEventLeadDelivered         AnalyticsEventType = "lead_delivered"
	AnalyticsEventReviewCreated         AnalyticsEventType = "review_created"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventProviderProfileViewed,
	AnalyticsEventProviderContactClick,
	AnalyticsEventLeadCreated,
	AnalyticsEventLeadDelivered,
	AnalyticsEventReviewCreated,
}

// IsValid reports whether the value matches the canonical analytics event enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
