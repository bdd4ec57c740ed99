package config

import (
	"path/filepath"
	"testing"

	"github.com/mpefaur/plant-vs-water/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB creates a fresh SQLite database with the schema applied. Each
// call returns an isolated database backed by the test's temp dir.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Plant{}, &models.WateringEvent{})
	if err != nil {
		t.Fatalf("creating test database schema: %v", err)
	}

	return db
}
