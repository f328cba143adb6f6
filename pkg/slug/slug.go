// Package slug derives URL-safe identifiers from display names and
// allocates unique variants against a table column.
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Make lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen. Leading and trailing hyphens are
// stripped; an empty result falls back to "item".
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

// Unique returns base if no row in table holds it, otherwise the first
// base-N suffix (base-1, base-2, ...) that is free. exclude, when non-nil,
// skips one row so updates do not collide with themselves. The caller is
// expected to run this inside the same transaction that inserts the row.
func Unique(tx *gorm.DB, table, column, base string, exclude any) (string, error) {
	candidate := base
	for n := 0; ; n++ {
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		q := tx.Table(table).Where(column+" = ?", candidate)
		if exclude != nil {
			q = q.Where("id <> ?", exclude)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}
