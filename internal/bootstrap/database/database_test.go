package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vesselwatch/internal/bootstrap/config"
)

func TestSQLiteDSNAddsPragmas(t *testing.T) {
	cases := map[string]string{
		"data/vw.sqlite":                    "data/vw.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		"file:vw.sqlite?cache=shared":       "file:vw.sqlite?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		"vw.sqlite?_pragma=foreign_keys(1)": "vw.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		"  vw.sqlite  ":                     "vw.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	for in, want := range cases {
		if got := SQLiteDSN(in); got != want {
			t.Fatalf("SQLiteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	db, err := Open(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "vw.sqlite"),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("sqlite directory not created: %v", err)
	}

	var enabled int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d, want 1", enabled)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("Open() expected error for unsupported driver")
	}
}
