package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/citysnap/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Snap.BaseDistance = 2.0
	cfg.Snap.RotationStep = 45
	cfg.DefaultCatalog = "/tmp/palette.toml"
	cfg.RecentLayouts = []string{"/tmp/a.city.json", "/tmp/b.city.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Snap.BaseDistance != 2.0 {
		t.Errorf("expected BaseDistance=2.0, got %f", loaded.Snap.BaseDistance)
	}
	if loaded.Snap.RotationStep != 45 {
		t.Errorf("expected RotationStep=45, got %f", loaded.Snap.RotationStep)
	}
	if loaded.DefaultCatalog != "/tmp/palette.toml" {
		t.Errorf("expected DefaultCatalog to round-trip, got %q", loaded.DefaultCatalog)
	}
	if len(loaded.RecentLayouts) != 2 {
		t.Errorf("expected 2 recent layouts, got %d", len(loaded.RecentLayouts))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Snap != defaults.Snap {
		t.Errorf("expected default snap settings %+v, got %+v", defaults.Snap, cfg.Snap)
	}
}

func TestLoadAppConfigPartialSnapKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"snap":{"base_distance":2.5}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Snap.BaseDistance != 2.5 {
		t.Errorf("expected BaseDistance=2.5, got %f", cfg.Snap.BaseDistance)
	}
	if cfg.Snap.ConsiderMultiplier != 3.0 || cfg.Snap.CommitMultiplier != 1.5 {
		t.Errorf("expected default multipliers, got %+v", cfg.Snap)
	}
}

func TestLoadAppConfigRejectsInvalidSnap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"snap":{"commit_multiplier":0}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for zero commit multiplier")
	}
	if !strings.Contains(err.Error(), "commit_multiplier") {
		t.Errorf("error should name the bad setting, got: %v", err)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentLayouts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"default_catalog":"","recent_layouts":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil after loading")
	}
}
