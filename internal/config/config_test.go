package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalogd/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := config.Load()
	if cfg.Port != "8080" {
		t.Fatalf("want default port 8080, got %s", cfg.Port)
	}
	if cfg.SyncInterval != 10*time.Second {
		t.Fatalf("want default interval 10s, got %s", cfg.SyncInterval)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogd.yaml")
	yaml := "port: \"9999\"\noffers_base_url: https://partner.example.com\nsync_interval: 1m\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7777") // env wins over the file

	cfg := config.Load()
	if cfg.Port != "7777" {
		t.Fatalf("env must win over file: got %s", cfg.Port)
	}
	if cfg.OffersBaseURL != "https://partner.example.com" {
		t.Fatalf("file value not applied: got %s", cfg.OffersBaseURL)
	}
	if cfg.SyncInterval != time.Minute {
		t.Fatalf("want 1m from file, got %s", cfg.SyncInterval)
	}
}
