package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Active is the canonical soft-delete filter. Every user-facing read applies it
// (or ActiveIn for joined tables) instead of repeating the predicate ad hoc.
func Active(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_deleted = ?", false)
}

// ActiveIn returns a scope filtering soft-deleted rows of the named (possibly
// aliased) table inside a join chain.
func ActiveIn(table string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(fmt.Sprintf("%s.is_deleted = ?", table), false)
	}
}

// Visible filters rows whose owning profile is blocked or soft-deleted, used
// for the cascade-hide policy on vendor-owned records.
func Visible(table string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			fmt.Sprintf("%s.is_deleted = ? AND %s.is_blocked = ?", table, table),
			false, false,
		)
	}
}
