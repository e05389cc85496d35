package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Store.Path != "votes.csv" {
		t.Errorf("expected Store.Path=votes.csv, got %s", cfg.Store.Path)
	}
	if cfg.Store.Index {
		t.Error("expected index to be off by default")
	}
	if cfg.Logging.DebugMode {
		t.Error("expected logging to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("BALLOT_STORE", "")
	t.Setenv("BALLOT_STORE_INDEX", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Store.Path = "data/votes.csv"
	cfg.Store.Index = true
	cfg.UI.Theme = "dark"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Store.Path != "data/votes.csv" {
		t.Errorf("expected Store.Path=data/votes.csv, got %s", loaded.Store.Path)
	}
	if !loaded.Store.Index {
		t.Error("expected Store.Index=true")
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.UI.Theme)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != DefaultConfig().Store.Path {
		t.Errorf("expected default store path, got %s", cfg.Store.Path)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  index: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "votes.csv" {
		t.Errorf("unset path should keep default, got %s", cfg.Store.Path)
	}
	if !cfg.Store.Index {
		t.Error("expected index from file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty store path")
	}

	cfg = DefaultConfig()
	cfg.UI.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown theme")
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log format")
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	if c.IsCategoryEnabled("ballot") {
		t.Error("categories must be disabled when debug_mode is off")
	}

	c.DebugMode = true
	if !c.IsCategoryEnabled("ballot") {
		t.Error("all categories enabled when no filter is set")
	}

	c.Categories = map[string]bool{"store": false}
	if c.IsCategoryEnabled("store") {
		t.Error("store should be disabled by filter")
	}
	if !c.IsCategoryEnabled("ballot") {
		t.Error("unlisted category should default to enabled")
	}
}
