package db

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesSchema(t *testing.T) {
	dbConn, err := Open(filepath.Join(t.TempDir(), "relay.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	for _, table := range []string{"pipelines", "steps", "runs"} {
		var name string
		row := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table)
		if err := row.Scan(&name); err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	dbConn, err := Open(filepath.Join(t.TempDir(), "relay.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	if err := ApplyMigrations(dbConn); err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
}

func TestInitDBUsesRelayHome(t *testing.T) {
	d := t.TempDir()
	t.Setenv("RELAY_HOME", d)

	dbConn, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	var n int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM pipelines").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty pipelines table, got %d rows", n)
	}
}
