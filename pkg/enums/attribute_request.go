package enums

import "fmt"

// AttributeType names the reference attribute a vendor is requesting.
type AttributeType string

const (
	AttributeTypeCategory AttributeType = "category"
	AttributeTypeSize     AttributeType = "size"
	AttributeTypeColor    AttributeType = "color"
)

var validAttributeTypes = []AttributeType{
	AttributeTypeCategory,
	AttributeTypeSize,
	AttributeTypeColor,
}

// String implements fmt.Stringer.
func (a AttributeType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttributeType.
func (a AttributeType) IsValid() bool {
	for _, candidate := range validAttributeTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttributeType converts raw input into an AttributeType.
func ParseAttributeType(value string) (AttributeType, error) {
	for _, candidate := range validAttributeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attribute type %q", value)
}

// AttributeRequestStatus tracks the approval workflow for attribute requests.
type AttributeRequestStatus string

const (
	AttributeRequestStatusPending  AttributeRequestStatus = "pending"
	AttributeRequestStatusApproved AttributeRequestStatus = "approved"
	AttributeRequestStatusRejected AttributeRequestStatus = "rejected"
)

var validAttributeRequestStatuses = []AttributeRequestStatus{
	AttributeRequestStatusPending,
	AttributeRequestStatusApproved,
	AttributeRequestStatusRejected,
}

// String implements fmt.Stringer.
func (a AttributeRequestStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttributeRequestStatus.
func (a AttributeRequestStatus) IsValid() bool {
	for _, candidate := range validAttributeRequestStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttributeRequestStatus converts raw input into an AttributeRequestStatus.
func ParseAttributeRequestStatus(value string) (AttributeRequestStatus, error) {
	for _, candidate := range validAttributeRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attribute request status %q", value)
}
