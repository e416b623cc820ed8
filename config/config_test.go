package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Protocol != 1 {
		t.Errorf("default Protocol = %d, want 1", cfg.Protocol)
	}
	if cfg.ServerAddr != "127.0.0.1:9001" {
		t.Errorf("default ServerAddr = %s", cfg.ServerAddr)
	}
	if cfg.ClientAddr != "127.0.0.1:9002" {
		t.Errorf("default ClientAddr = %s", cfg.ClientAddr)
	}
	if cfg.ArbiterAddr != "127.0.0.1:9003" {
		t.Errorf("default ArbiterAddr = %s", cfg.ArbiterAddr)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load of a missing file should return Default(), got %+v", cfg)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") should return Default(), got %+v", cfg)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "protocol: 2\nserver_addr: \"10.0.0.1:9001\"\nlog_level: \"debug\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Protocol != 2 {
		t.Errorf("Protocol = %d, want 2", cfg.Protocol)
	}
	if cfg.ServerAddr != "10.0.0.1:9001" {
		t.Errorf("ServerAddr = %s", cfg.ServerAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	// fields not present in the YAML keep their defaults
	if cfg.ClientAddr != Default().ClientAddr {
		t.Errorf("ClientAddr should fall back to the default, got %s", cfg.ClientAddr)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("not: [valid yaml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load should reject malformed YAML")
	}
}
