package testutils

import (
	"os"
	"sync"
	"testing"

	"github.com/lshigami/Edutrack/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// SetupTestDB connects to the PostgreSQL database named by TEST_DATABASE_DSN
// and returns a transaction that is rolled back when the test ends. The test
// is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	migrateOnce.Do(func() { migrateErr = database.Migrate(db) })
	if migrateErr != nil {
		t.Fatalf("Failed to migrate test database: %v", migrateErr)
	}

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return tx
}
