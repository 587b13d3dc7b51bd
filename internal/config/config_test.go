package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatal(err)
	}

	cfg := AppConfig
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != "3000" {
		t.Errorf("Unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Drafts.File != "drafts.json" || cfg.Drafts.BackupDir != "." {
		t.Errorf("Unexpected drafts defaults: %+v", cfg.Drafts)
	}
	if cfg.Storage.Type != "file" || cfg.Storage.Path != "palette-drafts.json" {
		t.Errorf("Unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Remote.URL != "http://localhost:3000/api" || cfg.Remote.TimeoutSeconds != 10 {
		t.Errorf("Unexpected remote defaults: %+v", cfg.Remote)
	}
	if !cfg.Features.Metrics.Enabled || !cfg.Features.Events.Enabled {
		t.Errorf("Expected metrics and events on by default: %+v", cfg.Features)
	}
	if cfg.Features.S3Archive.Enabled {
		t.Error("Expected S3 archiving off by default")
	}
	if cfg.Features.S3Archive.Prefix != "drafts" {
		t.Errorf("S3 prefix default = %q", cfg.Features.S3Archive.Prefix)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging level default = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: "8080"
storage:
  type: sqlite
  path: /tmp/drafts.db
remote:
  timeout_seconds: 3
features:
  metrics:
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err != nil {
		t.Fatal(err)
	}

	cfg := AppConfig
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host default not preserved: %q", cfg.Server.Host)
	}
	if cfg.Storage.Type != "sqlite" || cfg.Storage.Path != "/tmp/drafts.db" {
		t.Errorf("Storage not overridden: %+v", cfg.Storage)
	}
	if cfg.Remote.TimeoutSeconds != 3 {
		t.Errorf("Timeout = %d, want 3", cfg.Remote.TimeoutSeconds)
	}
	if cfg.Features.Metrics.Enabled {
		t.Error("Metrics override ignored")
	}
	if !cfg.Features.Events.Enabled {
		t.Error("Events default not preserved")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
