package enums

import "fmt"

// ShipmentStatus tracks delivery progress for a single order item.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
	ShipmentStatusReturned  ShipmentStatus = "returned"
)

var validShipmentStatuses = []ShipmentStatus{
	ShipmentStatusPending,
	ShipmentStatusShipped,
	ShipmentStatusDelivered,
	ShipmentStatusCancelled,
	ShipmentStatusReturned,
}

// shipmentTransitions holds the allowed forward edges. Nothing moves backward.
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusPending: {ShipmentStatusShipped, ShipmentStatusCancelled, ShipmentStatusReturned},
	ShipmentStatusShipped: {ShipmentStatusDelivered, ShipmentStatusCancelled, ShipmentStatusReturned},
}

// String implements fmt.Stringer.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShipmentStatus.
func (s ShipmentStatus) IsValid() bool {
	for _, candidate := range validShipmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether the status may move to the target state.
func (s ShipmentStatus) CanTransition(to ShipmentStatus) bool {
	for _, candidate := range shipmentTransitions[s] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ParseShipmentStatus converts raw input into a ShipmentStatus.
func ParseShipmentStatus(value string) (ShipmentStatus, error) {
	for _, candidate := range validShipmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipment status %q", value)
}
