// Package storagetest opens throwaway SQLite databases with the chat schema
// for tests in other packages.
package storagetest

import (
	"path/filepath"
	"testing"

	"jobboard/chat/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated database that lives in t.TempDir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.Room{},
		&models.Message{},
	))
	return db
}

// OpenDB returns an empty database that lives in t.TempDir.
// The pool is limited to one connection so concurrent tests never hit SQLITE_BUSY.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "chat.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedUsers inserts users with the given ids, using the id as username.
func SeedUsers(t testing.TB, db *gorm.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&models.User{ID: id, Username: id}).Error)
	}
}

// SeedApplication inserts a job application row.
func SeedApplication(t testing.TB, db *gorm.DB, app models.Application) {
	t.Helper()
	require.NoError(t, db.Create(&app).Error)
}
