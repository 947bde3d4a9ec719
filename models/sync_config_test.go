package models

import (
	"testing"
	"time"
)

func TestLoadSyncConfigDefaults(t *testing.T) {
	t.Setenv("LIFELINE_SYNC_URL", "")
	t.Setenv("LIFELINE_SYNC_API_KEY", "")

	cfg, err := LoadSyncConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Enabled() {
		t.Error("config without url/key must be disabled")
	}
	if cfg.SheetName != "Events" {
		t.Errorf("expected default sheet Events, got %q", cfg.SheetName)
	}
	if !cfg.SyncOnLoad {
		t.Error("sync on load should default to true")
	}
	if cfg.Interval != 5*time.Minute {
		t.Errorf("expected default interval 5m, got %v", cfg.Interval)
	}
}

func TestLoadSyncConfigOverrides(t *testing.T) {
	t.Setenv("LIFELINE_SYNC_URL", "https://example.com/exec")
	t.Setenv("LIFELINE_SYNC_API_KEY", "secret")
	t.Setenv("LIFELINE_SYNC_SHEET", "Archive")
	t.Setenv("LIFELINE_SYNC_ON_LOAD", "false")
	t.Setenv("LIFELINE_SYNC_INTERVAL", "90s")

	cfg, err := LoadSyncConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("config with url and key must be enabled")
	}
	if cfg.SheetName != "Archive" {
		t.Errorf("expected sheet Archive, got %q", cfg.SheetName)
	}
	if cfg.SyncOnLoad {
		t.Error("sync on load override not applied")
	}
	if cfg.Interval != 90*time.Second {
		t.Errorf("expected interval 90s, got %v", cfg.Interval)
	}
}

func TestLoadSyncConfigZeroIntervalDisables(t *testing.T) {
	t.Setenv("LIFELINE_SYNC_INTERVAL", "0")

	cfg, err := LoadSyncConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Interval != 0 {
		t.Errorf("expected interval 0, got %v", cfg.Interval)
	}
}

func TestLoadSyncConfigBadValues(t *testing.T) {
	t.Setenv("LIFELINE_SYNC_ON_LOAD", "sometimes")
	if _, err := LoadSyncConfig(); err == nil {
		t.Error("expected an error for a bad boolean")
	}
	t.Setenv("LIFELINE_SYNC_ON_LOAD", "")

	t.Setenv("LIFELINE_SYNC_INTERVAL", "whenever")
	if _, err := LoadSyncConfig(); err == nil {
		t.Error("expected an error for a bad duration")
	}
}

func TestSyncConfigValidate(t *testing.T) {
	cfg := &SyncConfig{} // local-only
	if err := cfg.Validate(); err != nil {
		t.Errorf("local-only config should validate, got %v", err)
	}

	cfg = &SyncConfig{
		EndpointURL: "https://example.com/exec",
		APIKey:      "secret",
		SheetName:   "Events",
		Interval:    5 * time.Second,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a sub-10s interval")
	}

	cfg.Interval = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero interval should validate, got %v", err)
	}
}
