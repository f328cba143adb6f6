package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// MediaUpload carries the stored path of an attachment plus its leading
// bytes for content sniffing. The bytes arrive base64-encoded and are never
// persisted.
type MediaUpload struct {
	Path string `json:"path" validate:"required"`
	Data []byte `json:"data,omitempty"`
}

// ReviewRequest is the payload for creating a review.
type ReviewRequest struct {
	Rating  int           `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string        `json:"comment,omitempty"`
	Media   []MediaUpload `json:"media,omitempty"`
}

// MediaDTO is one classified attachment on a review.
type MediaDTO struct {
	ID        uuid.UUID             `json:"id"`
	MediaType enums.ReviewMediaType `json:"media_type"`
	Path      string                `json:"path"`
}

// ReviewDTO is the public shape of a review.
type ReviewDTO struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	ReviewerName string     `json:"reviewer_name,omitempty"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment,omitempty"`
	Media        []MediaDTO `json:"media,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FromReviewModel maps a review row with its preloads into a DTO.
func FromReviewModel(review *models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.CustomerProfile != nil && review.CustomerProfile.Account != nil {
		account := review.CustomerProfile.Account
		dto.ReviewerName = account.FirstName + " " + account.LastName
	}
	for i := range review.Media {
		media := &review.Media[i]
		dto.Media = append(dto.Media, MediaDTO{
			ID:        media.ID,
			MediaType: media.MediaType,
			Path:      media.Path,
		})
	}
	return dto
}
