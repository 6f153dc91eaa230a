package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Root != DefaultRoot {
		t.Errorf("Root = %q, want %q", cfg.Root, DefaultRoot)
	}
	if cfg.Runtime != DefaultRuntime {
		t.Errorf("Runtime = %q, want %q", cfg.Runtime, DefaultRuntime)
	}
	if cfg.UsageOutput != DefaultUsageOutput {
		t.Errorf("UsageOutput = %q, want %q", cfg.UsageOutput, DefaultUsageOutput)
	}
	if cfg.Write {
		t.Error("Write defaults to true, want false")
	}
}

func TestLoad_MissingImplicitFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".stratreg.yml"), false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), true)
	if err == nil {
		t.Fatal("Load() expected error for explicit missing file")
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stratreg.yml")
	content := `
root: ./strategies
usage: https://ops.example.com/usage.json
runtime: node
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Root != "./strategies" {
		t.Errorf("Root = %q, want ./strategies", cfg.Root)
	}
	if cfg.Usage != "https://ops.example.com/usage.json" {
		t.Errorf("Usage = %q", cfg.Usage)
	}
	if cfg.Runtime != "node" {
		t.Errorf("Runtime = %q, want node", cfg.Runtime)
	}
	// Unset keys keep their defaults.
	if cfg.UsageOutput != DefaultUsageOutput {
		t.Errorf("UsageOutput = %q, want default", cfg.UsageOutput)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stratreg.yml")
	if err := os.WriteFile(path, []byte("root: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, true)
	if err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("Load() error = %q, want parse config", err)
	}
}
