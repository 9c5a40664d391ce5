package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{DefaultProfile: "work", Storage: StoragePebble, SweepInterval: "30s"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultProfile != "work" {
		t.Errorf("DefaultProfile = %q, want %q", loaded.DefaultProfile, "work")
	}
	if loaded.Storage != StoragePebble {
		t.Errorf("Storage = %q, want %q", loaded.Storage, StoragePebble)
	}
	if got := loaded.SweepEvery(); got != 30*time.Second {
		t.Errorf("SweepEvery() = %v, want 30s", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/config.toml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Save(path, &Config{DefaultProfile: "file", Storage: StorageSQLite}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("POMBO_PROFILE", "env")
	t.Setenv("POMBO_STORAGE", StorageMemory)

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultProfile != "env" {
		t.Errorf("DefaultProfile = %q, want env override", loaded.DefaultProfile)
	}
	if loaded.Storage != StorageMemory {
		t.Errorf("Storage = %q, want env override", loaded.Storage)
	}
}

func TestValidate(t *testing.T) {
	for _, backend := range []string{"", StorageSQLite, StoragePebble, StorageMemory} {
		if err := (&Config{Storage: backend}).Validate(); err != nil {
			t.Errorf("Validate(%q) error = %v", backend, err)
		}
	}
	if err := (&Config{Storage: "redis"}).Validate(); err == nil {
		t.Error("Validate() should reject unknown backend")
	}
}

func TestSweepEveryUnset(t *testing.T) {
	if got := (&Config{}).SweepEvery(); got != 0 {
		t.Errorf("SweepEvery() = %v, want 0 for unset", got)
	}
	if got := (&Config{SweepInterval: "bogus"}).SweepEvery(); got != 0 {
		t.Errorf("SweepEvery() = %v, want 0 for unparseable", got)
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Save(path, &Config{DefaultProfile: "default"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
