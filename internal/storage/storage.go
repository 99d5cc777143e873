package storage

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"income-tax-tracker/internal/models"
)

// NewSQLite opens the account database and migrates it. Entries are not
// stored here; they live in memory only.
func NewSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLite, open %s error: %w", dsn, err)
	}
	if strings.Contains(dsn, ":memory:") {
		// every new connection would open its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("storage.NewSQLite, sql db error: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("storage.migrate error: %w", err)
	}
	return nil
}
