// Package config loads the optional .sleuthbench.yaml harness
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

const fileName = ".sleuthbench.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .sleuthbench.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

type fileConfig struct {
	Binary    string `yaml:"binary"`
	Model     string `yaml:"model"`
	Config    string `yaml:"config"`
	ChecksDir string `yaml:"checks_dir"`
	GoldenDir string `yaml:"golden_dir"`
	Timeout   string `yaml:"timeout"`
}

// Load reads .sleuthbench.yaml from root and overlays it on the
// defaults. A missing file returns the defaults unchanged.
func (l *YAMLLoader) Load(root string) (domain.HarnessConfig, error) {
	cfg := domain.DefaultConfig(root)

	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.HarnessConfig{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if fc.Binary != "" {
		cfg.Binary = resolve(root, fc.Binary)
	}
	if fc.Model != "" {
		cfg.Model = resolve(root, fc.Model)
	}
	if fc.Config != "" {
		cfg.ToolConfig = resolve(root, fc.Config)
	}
	if fc.ChecksDir != "" {
		cfg.ChecksDir = fc.ChecksDir
	}
	if fc.GoldenDir != "" {
		cfg.GoldenDir = fc.GoldenDir
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return domain.HarnessConfig{}, fmt.Errorf("invalid timeout in %s: %w", fileName, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// resolve keeps absolute paths as-is and anchors relative ones at root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
