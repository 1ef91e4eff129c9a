package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ByCategory matches the category or the subcategory, case-insensitively.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	c := strings.ToLower(strings.TrimSpace(s.Category))
	if c == "" {
		return db
	}
	return db.Where("LOWER(category) = ? OR LOWER(subcategory) = ?", c, c)
}

type ByBrand struct {
	Brand string
}

func (s ByBrand) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(brand) = ?", strings.ToLower(strings.TrimSpace(s.Brand)))
}

// Available keeps products that can be ordered.
type Available struct{}

func (s Available) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("availability <> ?", "out_of_stock")
}
