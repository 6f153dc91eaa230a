// Package config resolves the four inputs the registry pipeline needs:
// root directory, write toggle, usage source and usage output, plus the
// extraction runtime. Defaults live here rather than in ambient globals.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRoot is scanned when no root is configured.
	DefaultRoot = "."
	// DefaultUsageOutput is where a fetched usage payload is persisted.
	DefaultUsageOutput = "usage.json"
	// DefaultRuntime selects the in-process extraction engine.
	DefaultRuntime = "goja"
)

// Config carries the resolved run configuration. Whether values arrive via
// flags or a config file is immaterial to the pipeline.
type Config struct {
	Root        string `yaml:"root"`
	Write       bool   `yaml:"-"`
	Usage       string `yaml:"usage"`
	UsageOutput string `yaml:"usage_output"`
	Runtime     string `yaml:"runtime"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:        DefaultRoot,
		UsageOutput: DefaultUsageOutput,
		Runtime:     DefaultRuntime,
	}
}

// Load returns the defaults overlaid with the YAML file at path, if any.
// A missing file is only an error when a path was explicitly given.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	return cfg, nil
}
