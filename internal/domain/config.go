package domain

import (
	"os"
	"path/filepath"
	"time"
)

// ModelEnvVar overrides the default model path for harness runs.
const ModelEnvVar = "LOOPSLEUTH_TEST_MODEL"

const defaultModelFile = "Qwen2.5-Coder-7B-Instruct-Q4_K_M.gguf"

// HarnessConfig carries the paths and limits a harness run needs.
// Everything is explicit configuration; components never consult
// process-wide state, so tests can run isolated and in parallel.
type HarnessConfig struct {
	Root       string        `yaml:"-"`
	Binary     string        `yaml:"binary"`
	Model      string        `yaml:"model"`
	ToolConfig string        `yaml:"config"`
	ChecksDir  string        `yaml:"checks_dir"`
	GoldenDir  string        `yaml:"golden_dir"`
	Timeout    time.Duration `yaml:"-"`
}

// DefaultConfig returns the conventional paths for a harness rooted at
// root: a release-build binary, the model from LOOPSLEUTH_TEST_MODEL or
// the home-directory cache, and the checks/golden layout used by the
// analyzer repository. Timeout defaults to none.
func DefaultConfig(root string) HarnessConfig {
	return HarnessConfig{
		Root:       root,
		Binary:     filepath.Join(root, "target", "release", "loopsleuth_bin"),
		Model:      defaultModelPath(),
		ToolConfig: filepath.Join(root, "loopsleuth.toml"),
		ChecksDir:  "tests/checks",
		GoldenDir:  "tests/golden",
	}
}

// ChecksPath resolves the checks directory against the harness root.
func (c HarnessConfig) ChecksPath() string { return resolveAgainst(c.Root, c.ChecksDir) }

// GoldenPath resolves the golden directory against the harness root.
func (c HarnessConfig) GoldenPath() string { return resolveAgainst(c.Root, c.GoldenDir) }

func resolveAgainst(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func defaultModelPath() string {
	if env := os.Getenv(ModelEnvVar); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultModelFile
	}
	return filepath.Join(home, ".loopsleuth", "models", defaultModelFile)
}
