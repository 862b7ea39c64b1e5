package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDataDirUnderHome(t *testing.T) {
	t.Setenv("RELAY_HOME", "")
	d, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if !strings.HasSuffix(d, ".relay") {
		t.Fatalf("expected data dir to end with .relay, got %q", d)
	}
}

func TestDataDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RELAY_HOME", dir)
	d, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if d != dir {
		t.Fatalf("expected %q, got %q", dir, d)
	}
}

func TestDBPathInsideDataDir(t *testing.T) {
	t.Setenv("RELAY_HOME", t.TempDir())
	d, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	p, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath failed: %v", err)
	}
	if filepath.Dir(p) != d {
		t.Fatalf("expected DB inside data dir %q, got %q", d, p)
	}
	if filepath.Base(p) != "relay.db" {
		t.Fatalf("unexpected db file name: %q", p)
	}
}

func TestBaseDirIsAbsolute(t *testing.T) {
	d, err := BaseDir()
	if err != nil {
		t.Fatalf("BaseDir failed: %v", err)
	}
	if !filepath.IsAbs(d) {
		t.Fatalf("expected absolute base dir, got %q", d)
	}
}
