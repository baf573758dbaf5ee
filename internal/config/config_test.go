// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	// With no config file, should return defaults without error
	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: json
  confidence_levels: high
  checks: CURP,RFC
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.ConfidenceLevels != "high" {
		t.Errorf("expected confidence_levels=high, got %q", cfg.Defaults.ConfidenceLevels)
	}
	// Absent from the file, must keep its default
	if !cfg.Defaults.FraudAnalysis {
		t.Error("fraud_analysis should stay enabled when the file omits it")
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.ConfidenceLevels != "all" {
		t.Errorf("expected default confidence_levels=all, got %q", cfg.Defaults.ConfidenceLevels)
	}
	if !cfg.Defaults.FraudAnalysis {
		t.Error("expected fraud_analysis=true by default")
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
	// Built-in profiles should exist
	for _, name := range []string{"strict", "lenient"} {
		if _, ok := cfg.Profiles[name]; !ok {
			t.Errorf("expected %q profile to exist in defaults", name)
		}
	}
}

func TestLoadConfig_ExplicitFraudAnalysisOff(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  fraud_analysis: false
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.FraudAnalysis {
		t.Error("explicit fraud_analysis=false must be honored")
	}
}

func TestGetProfile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	strict := cfg.GetProfile("strict")
	if strict == nil {
		t.Fatal("expected strict profile")
	}
	if strict.Checks != "all" {
		t.Errorf("strict profile checks: got %q", strict.Checks)
	}
	if cfg.GetProfile("nope") != nil {
		t.Error("unknown profile should return nil")
	}
}

func TestValidatorFloors(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
validators:
  curp:
    min_confidence: 0.8
  nss:
    min_confidence: 1
profiles:
  onboarding:
    validators:
      curp:
        min_confidence: 0.95
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	floors := cfg.ValidatorFloors(nil)
	if floors["CURP"] != 0.8 {
		t.Errorf("expected CURP floor 0.8, got %v", floors["CURP"])
	}
	// Whole numbers unmarshal as int; both numeric forms must be accepted.
	if floors["NSS"] != 1.0 {
		t.Errorf("expected NSS floor 1.0, got %v", floors["NSS"])
	}
	if _, exists := floors["RFC"]; exists {
		t.Error("unconfigured validators must not appear in the floor map")
	}

	// Profile-level settings override config-level ones.
	floors = cfg.ValidatorFloors(cfg.GetProfile("onboarding"))
	if floors["CURP"] != 0.95 {
		t.Errorf("expected profile override 0.95, got %v", floors["CURP"])
	}
	if floors["NSS"] != 1.0 {
		t.Errorf("profile without an NSS entry must keep the config floor, got %v", floors["NSS"])
	}
}

func TestFileExists_StatErrorIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(plain, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	// Stat on a path under a regular file fails with ENOTDIR rather than
	// ENOENT; fileExists must report false instead of dereferencing a nil
	// FileInfo.
	if fileExists(filepath.Join(plain, "child")) {
		t.Error("a path under a regular file must not be reported as existing")
	}
	if !fileExists(plain) {
		t.Error("an existing regular file must be reported as existing")
	}
	if fileExists(dir) {
		t.Error("a directory must not be reported as existing")
	}
}
