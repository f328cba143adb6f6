package models

import (
	"time"

	"github.com/google/uuid"
)

// Color is a shared variant attribute managed by admins. Like Size it is
// hard-deleted and protected by an in-use check.
type Color struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	HexCode   string    `gorm:"column:hex_code"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
