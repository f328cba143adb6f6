package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// ReviewMedia is an image or video attached to a review. MediaType is
// classified from the uploaded bytes at ingest time.
type ReviewMedia struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ReviewID  uuid.UUID             `gorm:"column:review_id;type:uuid;not null;index"`
	MediaType enums.ReviewMediaType `gorm:"column:media_type;not null"`
	Path      string                `gorm:"column:path;not null"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
