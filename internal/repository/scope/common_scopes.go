package scope

import "gorm.io/gorm"

// CatalogOrder lists products in a stable order so catalog loads are reproducible.
func CatalogOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
