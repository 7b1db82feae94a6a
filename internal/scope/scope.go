// Package scope holds reusable gorm query scopes.
package scope

import "gorm.io/gorm"

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// NormalizePage clamps offset to >= 0 and limit to 1..MaxLimit (DefaultLimit when unset).
func NormalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	offset, limit = NormalizePage(offset, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

// Vendor restricts users to one vendor. A nil vendorID leaves the query untouched.
func Vendor(column string, vendorID *string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if vendorID == nil || *vendorID == "" {
			return db
		}
		return db.Where(column+" = ?", *vendorID)
	}
}
