// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormCatalog is a named, reusable word list. Catalogs are input material
// loaded into the word-input phase; finished games are never stored.
type GormCatalog struct {
	gorm.Model
	Name  string             `gorm:"uniqueIndex;not null"`
	Words []GormCatalogEntry `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE"`
}

// GormCatalogEntry is one word inside a catalog. Duplicate text is allowed,
// matching the in-game rule that duplicate words are distinct entities.
type GormCatalogEntry struct {
	gorm.Model
	CatalogID uint   `gorm:"index;not null"`
	Text      string `gorm:"not null"`
	Position  int    `gorm:"default:0"`
}
