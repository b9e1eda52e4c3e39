// Package database opens the sqlite database shared by the server registry
// and the file inventory
package database

import (
	"fmt"
	"strings"

	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/server"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// BusyTimeoutMillis how long sqlite waits on a locked database before failing
const BusyTimeoutMillis = 5000

// Open opens (creating if necessary) the sqlite database at dbFile
func Open(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbFile)), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbFile, err)
	}

	return db, nil
}

// Migrate creates or updates the servers and scanned_files tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&server.ServerModel{}, &inventory.FileModel{})
}

// OpenAndMigrate opens the database at dbFile and migrates it
func OpenAndMigrate(dbFile string) (*gorm.DB, error) {
	db, err := Open(dbFile)

	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func dsn(dbFile string) string {
	sep := "?"

	if strings.Contains(dbFile, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%s_busy_timeout=%d", dbFile, sep, BusyTimeoutMillis)
}
