// Package config loads a pkg/types.BenchmarkConfig from a YAML file,
// layered under the compiled-in defaults, for callers that want a config
// file instead of constructing the struct literally.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/diskcheck/diskcheck/pkg/types"
)

// LoadFromFile reads a YAML file at path and overlays its fields onto
// DefaultBenchmarkConfig(targetPath). Fields absent from the file keep
// their default value; a field present in the file with an empty or zero
// value replaces the default with the zero value (yaml.v2 sets non-pointer
// fields it finds, even to zero), except target_path, which falls back to
// targetPath when empty.
func LoadFromFile(path, targetPath string) (types.BenchmarkConfig, error) {
	cfg := types.DefaultBenchmarkConfig(targetPath)

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	// The file may omit target_path, relying on the caller-supplied one.
	if cfg.TargetPath == "" {
		cfg.TargetPath = targetPath
	}
	return cfg, nil
}

// SaveToFile writes cfg as YAML to path, creating parent directories as
// needed.
func SaveToFile(cfg types.BenchmarkConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
