package enums

import "fmt"

// ReviewMediaType classifies an uploaded review attachment.
type ReviewMediaType string

const (
	ReviewMediaTypeImage ReviewMediaType = "image"
	ReviewMediaTypeVideo ReviewMediaType = "video"
)

var validReviewMediaTypes = []ReviewMediaType{
	ReviewMediaTypeImage,
	ReviewMediaTypeVideo,
}

// String implements fmt.Stringer.
func (r ReviewMediaType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReviewMediaType.
func (r ReviewMediaType) IsValid() bool {
	for _, candidate := range validReviewMediaTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReviewMediaType converts raw input into a ReviewMediaType.
func ParseReviewMediaType(value string) (ReviewMediaType, error) {
	for _, candidate := range validReviewMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review media type %q", value)
}
