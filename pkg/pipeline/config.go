// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PipelineConfig holds settings for the manifest and output artifacts.
type PipelineConfig struct {
	// ManifestPath is the location of the asset manifest document
	// (default "asset_manifest.json").
	ManifestPath string `yaml:"manifest_path"`

	// OutputRoot is the category root for exported artifacts
	// (default "Meshes"). Export paths are formed as
	// <OutputRoot>/<regionId>/<assetId>.<ExportFormat> with forward
	// slashes regardless of host conventions.
	OutputRoot string `yaml:"output_root"`

	// ExportFormat is the export file extension (default "fbx").
	ExportFormat string `yaml:"export_format"`

	// HistoryDir is the directory for per-run artifacts (brief, rendered
	// script, log) saved for debugging (default "history").
	HistoryDir string `yaml:"history_dir"`

	// StaleAfterMin is the age in minutes after which an in_progress asset
	// is considered abandoned by the reclaim command (default 120).
	// Reclaim never runs automatically.
	StaleAfterMin int `yaml:"stale_after_min"`
}

// BlenderConfig holds settings for the remote authoring tool.
type BlenderConfig struct {
	// ServerName identifies the MCP server in logs and error messages
	// (default "blender").
	ServerName string `yaml:"server_name"`

	// Command launches the MCP server over stdio (default "uvx").
	Command string `yaml:"command"`

	// Args are the arguments passed to Command (default ["blender-mcp"]).
	Args []string `yaml:"args"`

	// ResetTimeoutSec bounds the scene-reset step (default 30).
	ResetTimeoutSec int `yaml:"reset_timeout_sec"`

	// GenerateTimeoutSec bounds the geometry-generation step, the heaviest
	// of the three (default 300).
	GenerateTimeoutSec int `yaml:"generate_timeout_sec"`

	// ExportTimeoutSec bounds the export step (default 120).
	ExportTimeoutSec int `yaml:"export_timeout_sec"`
}

// Config holds all pipeline settings. Consumers either construct a Config in
// Go code and pass it to New(), or place a configuration.yaml next to the
// binary and call NewFromFile().
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Blender  BlenderConfig  `yaml:"blender"`
}

// DefaultConfigFile is the conventional configuration filename.
const DefaultConfigFile = "configuration.yaml"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// WriteDefaultConfig writes a configuration.yaml at the given path with all
// defaults filled in. Returns an error if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	header := "# Meshsmith pipeline configuration. Edit fields below.\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

// ResetTimeout returns the scene-reset step budget as a Duration.
func (c *Config) ResetTimeout() time.Duration {
	return time.Duration(c.Blender.ResetTimeoutSec) * time.Second
}

// GenerateTimeout returns the geometry-generation step budget as a Duration.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.Blender.GenerateTimeoutSec) * time.Second
}

// ExportTimeout returns the export step budget as a Duration.
func (c *Config) ExportTimeout() time.Duration {
	return time.Duration(c.Blender.ExportTimeoutSec) * time.Second
}

// StaleAge returns the reclaim threshold as a Duration.
func (c *Config) StaleAge() time.Duration {
	return time.Duration(c.Pipeline.StaleAfterMin) * time.Minute
}

func (c *Config) applyDefaults() {
	if c.Pipeline.ManifestPath == "" {
		c.Pipeline.ManifestPath = "asset_manifest.json"
	}
	if c.Pipeline.OutputRoot == "" {
		c.Pipeline.OutputRoot = "Meshes"
	}
	if c.Pipeline.ExportFormat == "" {
		c.Pipeline.ExportFormat = "fbx"
	}
	if c.Pipeline.HistoryDir == "" {
		c.Pipeline.HistoryDir = "history"
	}
	if c.Pipeline.StaleAfterMin == 0 {
		c.Pipeline.StaleAfterMin = 120
	}
	if c.Blender.ServerName == "" {
		c.Blender.ServerName = "blender"
	}
	if c.Blender.Command == "" {
		c.Blender.Command = "uvx"
	}
	if len(c.Blender.Args) == 0 {
		c.Blender.Args = []string{"blender-mcp"}
	}
	if c.Blender.ResetTimeoutSec == 0 {
		c.Blender.ResetTimeoutSec = 30
	}
	if c.Blender.GenerateTimeoutSec == 0 {
		c.Blender.GenerateTimeoutSec = 300
	}
	if c.Blender.ExportTimeoutSec == 0 {
		c.Blender.ExportTimeoutSec = 120
	}
}

// LoadConfig reads a configuration YAML file and returns a Config with
// defaults applied.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}
