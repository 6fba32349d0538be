// Package config provides CLI configuration management for the voicenotes
// command-line tool. It supports loading configuration from a YAML file,
// environment variables, and command-line flags, with flags taking
// precedence over environment variables over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Device selects where the local engines run.
type Device string

const (
	// DeviceCPU runs models on the CPU.
	DeviceCPU Device = "cpu"
	// DeviceCUDA runs models on a CUDA-capable GPU.
	DeviceCUDA Device = "cuda"
)

// IsValid reports whether the device is one of the supported values.
func (d Device) IsValid() bool {
	return d == DeviceCPU || d == DeviceCUDA
}

// String returns the device token as passed to the engines.
func (d Device) String() string {
	return string(d)
}

// Default configuration values.
const (
	DefaultModel        = "small"
	DefaultDevice       = DeviceCPU
	DefaultSummaryModel = "gpt-4o-mini"
	DefaultConfigDir    = ".voicenotes"
	DefaultConfigFile   = "config.yaml"
)

// Environment variable names recognized as overrides.
const (
	EnvModel        = "VOICENOTES_MODEL"
	EnvDevice       = "VOICENOTES_DEVICE"
	EnvLanguage     = "VOICENOTES_LANGUAGE"
	EnvOutputDir    = "VOICENOTES_OUTPUT_DIR"
	EnvSummaryModel = "VOICENOTES_SUMMARY_MODEL"
	EnvDebug        = "VOICENOTES_DEBUG"
)

// CLIConfig holds the resolved configuration for a CLI invocation.
type CLIConfig struct {
	// Model is the default speech-recognition model name.
	Model string `yaml:"model"`

	// Device is the default compute device (cpu or cuda).
	Device Device `yaml:"device"`

	// Language is an optional default language code (e.g. "en").
	Language string `yaml:"language"`

	// OutputDir is an optional default output directory. Empty means
	// "next to the input file".
	OutputDir string `yaml:"output_dir"`

	// SummaryModel is the default chat model used for summaries.
	SummaryModel string `yaml:"summary_model"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a CLIConfig populated with defaults.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Model:        DefaultModel,
		Device:       DefaultDevice,
		SummaryModel: DefaultSummaryModel,
	}
}

// ConfigPath returns the path of the user's config file
// (~/.voicenotes/config.yaml).
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// LoadConfig loads configuration from the user's config file (when present)
// and applies environment-variable overrides. A missing file is not an
// error; a malformed one is.
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if !cfg.Device.IsValid() {
		return nil, fmt.Errorf("invalid device %q: must be %q or %q", cfg.Device, DeviceCPU, DeviceCUDA)
	}
	return cfg, nil
}

// loadFile merges a YAML config file into cfg. Missing files are ignored.
func loadFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg fields from VOICENOTES_* environment variables.
func applyEnv(cfg *CLIConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDevice)); v != "" {
		cfg.Device = Device(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		cfg.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.OutputDir = expandPath(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSummaryModel)); v != "" {
		cfg.SummaryModel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return original if home dir lookup fails.
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
