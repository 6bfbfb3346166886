package dao

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the same error
// translation the production connection uses, so duplicate-key failures
// surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}

	if err = InitTables(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
