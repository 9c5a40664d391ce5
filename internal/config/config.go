package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage backend names accepted in config.
const (
	StorageSQLite = "sqlite"
	StoragePebble = "pebble"
	StorageMemory = "memory"
)

// Config represents the global ~/.pombo/config.toml. Environment
// variables override the file: POMBO_PROFILE and POMBO_STORAGE.
type Config struct {
	DefaultProfile string `toml:"default_profile"`
	Storage        string `toml:"storage"`
	SweepInterval  string `toml:"sweep_interval"`
	SeedDemoData   bool   `toml:"seed_demo_data"`
}

// Load reads config from the given path and applies env overrides.
// Returns an error if the file is missing or malformed.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("POMBO_PROFILE"); v != "" {
		cfg.DefaultProfile = v
	}
	if v := os.Getenv("POMBO_STORAGE"); v != "" {
		cfg.Storage = v
	}
}

// Validate checks the storage backend name. Empty means the default.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageSQLite, StoragePebble, StorageMemory:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", c.Storage)
}

// SweepEvery returns the parsed sweep interval, zero when unset or
// unparseable (callers substitute their default).
func (c *Config) SweepEvery() time.Duration {
	if c.SweepInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SweepInterval)
	if err != nil {
		return 0
	}
	return d
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
