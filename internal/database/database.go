package database

import (
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/auth"
	"github.com/ksred/folio-api/internal/database/migrations"
	"github.com/ksred/folio-api/internal/types"
)

// NewDatabase initializes and returns a new GORM DB connection
// The database file path can be overridden via the DB_PATH environment variable
func NewDatabase() (*gorm.DB, error) {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "folio.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema and supporting indexes
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&auth.User{},
		&types.Stock{},
		&types.Order{},
	)
	if err != nil {
		return err
	}

	if err := migrations.AddOrderIndexes(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
