// Package config provides CLI configuration management for the voicenotes tool.
package config

import (
	"testing"
)

// TestDefaultConfig verifies default configuration values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %v, want %v", cfg.Model, DefaultModel)
	}
	if cfg.Device != DefaultDevice {
		t.Errorf("Device = %v, want %v", cfg.Device, DefaultDevice)
	}
	if cfg.SummaryModel != DefaultSummaryModel {
		t.Errorf("SummaryModel = %v, want %v", cfg.SummaryModel, DefaultSummaryModel)
	}
	if cfg.Language != "" {
		t.Errorf("Language = %v, want empty", cfg.Language)
	}
	if cfg.Debug {
		t.Error("Debug should be false by default")
	}
}

// TestDevice_IsValid verifies device validation.
func TestDevice_IsValid(t *testing.T) {
	tests := []struct {
		device Device
		valid  bool
	}{
		{DeviceCPU, true},
		{DeviceCUDA, true},
		{"gpu", false},
		{"", false},
		{"CPU", false}, // Case sensitive
		{"cuda:0", false},
	}

	for _, tc := range tests {
		if got := tc.device.IsValid(); got != tc.valid {
			t.Errorf("Device(%q).IsValid() = %v, want %v", tc.device, got, tc.valid)
		}
	}
}

// TestApplyEnv verifies environment-variable overrides.
func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvModel, "medium")
	t.Setenv(EnvDevice, "cuda")
	t.Setenv(EnvLanguage, "de")
	t.Setenv(EnvSummaryModel, "gpt-4o")
	t.Setenv(EnvDebug, "true")

	cfg := DefaultConfig()
	applyEnv(cfg)

	if cfg.Model != "medium" {
		t.Errorf("Model = %v, want medium", cfg.Model)
	}
	if cfg.Device != DeviceCUDA {
		t.Errorf("Device = %v, want cuda", cfg.Device)
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %v, want de", cfg.Language)
	}
	if cfg.SummaryModel != "gpt-4o" {
		t.Errorf("SummaryModel = %v, want gpt-4o", cfg.SummaryModel)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

// TestApplyEnv_BlankValuesIgnored verifies blank env vars do not clobber defaults.
func TestApplyEnv_BlankValuesIgnored(t *testing.T) {
	t.Setenv(EnvModel, "   ")
	t.Setenv(EnvDevice, "")

	cfg := DefaultConfig()
	applyEnv(cfg)

	if cfg.Model != DefaultModel {
		t.Errorf("Model = %v, want %v", cfg.Model, DefaultModel)
	}
	if cfg.Device != DefaultDevice {
		t.Errorf("Device = %v, want %v", cfg.Device, DefaultDevice)
	}
}
