// Package testutil provides a throwaway SQLite database with the full schema
// for tests in other packages.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/judging-system/config"
	"github.com/Dosada05/judging-system/db"
)

// SetupTestDB opens a fresh SQLite database file under t.TempDir with the
// schema applied. The handle is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "judging.db")
	conn, err := db.Connect(config.DriverSQLite, "file:"+path, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.CreateSchema(context.Background(), conn, config.DriverSQLite); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return conn
}
