package enums

import "fmt"

// DeliveryStatus tracks how far a provider has taken a delivered lead.
type DeliveryStatus string

const (
	DeliveryStatusNew       DeliveryStatus = "new"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusOpened    DeliveryStatus = "opened"
	DeliveryStatusResponded DeliveryStatus = "responded"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusNew,
	DeliveryStatusDelivered,
	DeliveryStatusOpened,
	DeliveryStatusResponded,
}

// deliveryStatusRank orders the lifecycle; transitions only move forward.
var deliveryStatusRank = map[DeliveryStatus]int{
	DeliveryStatusNew:       0,
	DeliveryStatusDelivered: 1,
	DeliveryStatusOpened:    2,
	DeliveryStatusResponded: 3,
}

// String implements fmt.Stringer.
func (d DeliveryStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryStatus.
func (d DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether moving from d to next is a forward step.
func (d DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	from, ok := deliveryStatusRank[d]
	if !ok {
		return false
	}
	to, ok := deliveryStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ParseDeliveryStatus converts raw input into a DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
