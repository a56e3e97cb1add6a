package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/steadyops/facilities-backend/internal/db"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
)

// Logger returns a quiet logger suitable for tests.
func Logger() *logger.Logger {
	l, err := logger.New("development")
	if err != nil {
		panic(err)
	}
	return l
}

// DB opens the database named by TEST_POSTGRES_DSN and migrates the
// full schema. Tests calling it are skipped when the variable is
// unset so the suite stays runnable without a live Postgres.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		t.Fatalf("create uuid extension: %v", err)
	}
	if err := db.AutoMigrateAll(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

// Tx begins a transaction that is rolled back when the test finishes,
// so each test sees a clean database.
func Tx(t *testing.T, conn *gorm.DB) *gorm.DB {
	t.Helper()
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}
