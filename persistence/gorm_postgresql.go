// persistence/gorm_postgresql.go
package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/wordrush/models"
)

// GormPostgreSQL is the GORM-backed word store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormCatalog{}, &models.GormCatalogEntry{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveCatalog upserts the named catalog, replacing its entries.
func (p *GormPostgreSQL) SaveCatalog(name string, wordTexts []string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var catalog models.GormCatalog
		result := tx.Where("name = ?", name).First(&catalog)

		if result.Error == gorm.ErrRecordNotFound {
			catalog = models.GormCatalog{Name: name}
			if err := tx.Create(&catalog).Error; err != nil {
				return err
			}
		} else if result.Error != nil {
			return result.Error
		} else {
			if err := tx.Where("catalog_id = ?", catalog.ID).
				Delete(&models.GormCatalogEntry{}).Error; err != nil {
				return err
			}
		}

		for i, text := range wordTexts {
			entry := models.GormCatalogEntry{
				CatalogID: catalog.ID,
				Text:      text,
				Position:  i,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCatalog returns the words of the named catalog in stored order.
func (p *GormPostgreSQL) LoadCatalog(name string) ([]string, error) {
	var catalog models.GormCatalog
	if err := p.db.Where("name = ?", name).First(&catalog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}

	var entries []models.GormCatalogEntry
	if err := p.db.Where("catalog_id = ?", catalog.ID).
		Order("position asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out, nil
}

// ListCatalogs returns every stored catalog name.
func (p *GormPostgreSQL) ListCatalogs() ([]string, error) {
	var names []string
	if err := p.db.Model(&models.GormCatalog{}).
		Order("name asc").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteCatalog removes the named catalog and its entries.
func (p *GormPostgreSQL) DeleteCatalog(name string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var catalog models.GormCatalog
		if err := tx.Where("name = ?", name).First(&catalog).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCatalogNotFound
			}
			return err
		}
		if err := tx.Where("catalog_id = ?", catalog.ID).
			Delete(&models.GormCatalogEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalog).Error
	})
}

// Close releases the underlying connection pool.
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
