package test_util

import (
	"github.com/robgonnella/backupcheck/internal/database"
	"gorm.io/gorm"
)

// GetDBConnection opens and migrates a test database at dbFile
func GetDBConnection(dbFile string) (*gorm.DB, error) {
	return database.OpenAndMigrate(dbFile)
}

// Close releases the underlying sql connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
