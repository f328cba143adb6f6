package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the catalog tree. ParentID is null at the root; a
// category may never reference itself. A name is unique among non-deleted
// rows only; soft-deleting frees it for reuse, enforced by a partial unique
// index in the migrations.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Parent      *Category  `gorm:"foreignKey:ParentID"`
	Description string     `gorm:"column:description"`
	ImagePath   string     `gorm:"column:image_path"`
	IsDeleted   bool       `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
