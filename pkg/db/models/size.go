package models

import (
	"time"

	"github.com/google/uuid"
)

// Size is a shared variant attribute managed by admins. Sizes are
// hard-deleted, never soft-deleted, so deletion is refused while any
// variant references the row.
type Size struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
