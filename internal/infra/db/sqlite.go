// Package db provides database connection and management functionality.
package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/self-focus/backend/config"
)

// MemoryDSN is a private in-memory SQLite database.
const MemoryDSN = "file::memory:"

// NewSQLiteConnection opens a SQLite database through the pure Go driver.
// The pool is limited to one connection so that an in-memory database is shared
// by every query and writes never hit SQLITE_BUSY.
func NewSQLiteConnection(dsn string) (*Database, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	slog.Debug("Database connection established", "driver", config.DriverSQLite, "dsn", dsn)

	return &Database{
		db:  db,
		cfg: &config.DatabaseConfig{Driver: config.DriverSQLite, URL: dsn},
	}, nil
}
