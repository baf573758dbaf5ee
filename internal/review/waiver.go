// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package review manages waivers: reviewer decisions that a specific fraud
// indicator on a specific document was examined and accepted. Waived
// indicators are removed before the risk score is folded, so a waiver
// lowers the score exactly by the indicator's contribution.
package review

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"veridoc/internal/fraud"
)

// WaiverRule records one reviewer decision.
type WaiverRule struct {
	ID         string            `yaml:"id"`
	Hash       string            `yaml:"hash"`
	Reason     string            `yaml:"reason"`
	Enabled    bool              `yaml:"enabled"`
	CreatedBy  string            `yaml:"created_by,omitempty"`
	CreatedAt  time.Time         `yaml:"created_at"`
	ExpiresAt  *time.Time        `yaml:"expires_at,omitempty"`
	ReviewedBy string            `yaml:"reviewed_by,omitempty"`
	ReviewedAt *time.Time        `yaml:"reviewed_at,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// WaiverConfig is the on-disk waiver file.
type WaiverConfig struct {
	Version string       `yaml:"version"`
	Rules   []WaiverRule `yaml:"rules"`
}

// Manager loads, matches and persists waiver rules.
type Manager struct {
	configPath string
	config     *WaiverConfig
	enabled    bool
}

// NewManager creates a manager backed by the given YAML file. A missing or
// unreadable file yields an empty rule set, not an error.
func NewManager(configPath string) *Manager {
	m := &Manager{
		configPath: configPath,
		enabled:    true,
	}
	m.loadConfig()
	return m
}

// SetEnabled toggles waiver matching without discarding loaded rules.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

func (m *Manager) loadConfig() {
	empty := &WaiverConfig{Version: "1.0", Rules: []WaiverRule{}}
	if m.configPath == "" {
		m.config = empty
		return
	}

	data, err := os.ReadFile(filepath.Clean(m.configPath))
	if err != nil {
		m.config = empty
		return
	}

	var config WaiverConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		m.config = empty
		return
	}
	m.config = &config
}

// Fingerprint identifies one indicator on one document. The document key
// (typically the CURP or RFC) and the indicator detail are hashed so the
// waiver file never stores personal data in the clear.
func Fingerprint(documentKey string, ind fraud.Indicator) string {
	components := []string{
		string(ind.Kind),
		ind.Field,
		hashSensitive(documentKey),
		hashSensitive(ind.Message + "|" + ind.Detail),
	}
	sum := sha256.Sum256([]byte(strings.Join(components, "|")))
	return fmt.Sprintf("%x", sum)
}

// hashSensitive shortens a sha256 of the value for storage.
func hashSensitive(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%x", sum)[:16]
}

// IsWaived reports whether an active rule covers the indicator.
func (m *Manager) IsWaived(documentKey string, ind fraud.Indicator) (bool, *WaiverRule) {
	if !m.enabled || m.config == nil {
		return false, nil
	}

	hash := Fingerprint(documentKey, ind)
	for i := range m.config.Rules {
		rule := &m.config.Rules[i]
		if rule.Hash != hash {
			continue
		}
		if !rule.Enabled {
			continue
		}
		if rule.ExpiresAt != nil && time.Now().After(*rule.ExpiresAt) {
			continue
		}
		return true, rule
	}
	return false, nil
}

// AddWaiver records a reviewer decision and persists it. Expiry defaults
// to 30 days so waivers are re-examined, never permanent by accident.
func (m *Manager) AddWaiver(documentKey string, ind fraud.Indicator, reason, createdBy string, expiresAt *time.Time) error {
	if m.config == nil {
		m.config = &WaiverConfig{Version: "1.0", Rules: []WaiverRule{}}
	}

	hash := Fingerprint(documentKey, ind)
	for _, rule := range m.config.Rules {
		if rule.Hash == hash {
			return fmt.Errorf("waiver already exists for this indicator")
		}
	}

	maxID := 0
	for _, rule := range m.config.Rules {
		var num int
		if _, err := fmt.Sscanf(rule.ID, "WVR-%08d", &num); err == nil && num > maxID {
			maxID = num
		}
	}

	if expiresAt == nil {
		def := time.Now().AddDate(0, 1, 0)
		expiresAt = &def
	}

	m.config.Rules = append(m.config.Rules, WaiverRule{
		ID:        fmt.Sprintf("WVR-%08d", maxID+1),
		Hash:      hash,
		Reason:    reason,
		Enabled:   true,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		Metadata: map[string]string{
			"indicator_kind":    string(ind.Kind),
			"field":             ind.Field,
			"document_key_hash": hashSensitive(documentKey),
		},
	})
	return m.saveConfig()
}

// RemoveWaiver deletes a rule by ID.
func (m *Manager) RemoveWaiver(id string) error {
	if m.config == nil {
		return fmt.Errorf("no waiver config loaded")
	}
	for i, rule := range m.config.Rules {
		if rule.ID == id {
			m.config.Rules = append(m.config.Rules[:i], m.config.Rules[i+1:]...)
			return m.saveConfig()
		}
	}
	return fmt.Errorf("waiver rule with ID %s not found", id)
}

// ListWaivers returns all rules, active or not.
func (m *Manager) ListWaivers() []WaiverRule {
	if m.config == nil {
		return []WaiverRule{}
	}
	return m.config.Rules
}

// CleanupExpired drops expired rules and returns how many were removed. A
// persist failure is returned so callers know the on-disk rule set still
// holds the expired entries.
func (m *Manager) CleanupExpired() (int, error) {
	if m.config == nil {
		return 0, nil
	}

	now := time.Now()
	var active []WaiverRule
	for _, rule := range m.config.Rules {
		if rule.ExpiresAt == nil || now.Before(*rule.ExpiresAt) {
			active = append(active, rule)
		}
	}

	removed := len(m.config.Rules) - len(active)
	m.config.Rules = active
	if removed > 0 {
		if err := m.saveConfig(); err != nil {
			return removed, fmt.Errorf("failed to persist waiver cleanup: %w", err)
		}
	}
	return removed, nil
}

func (m *Manager) saveConfig() error {
	if m.configPath == "" {
		return fmt.Errorf("no waiver file path configured")
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal waiver config: %w", err)
	}

	dir := filepath.Dir(m.configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write waiver config: %w", err)
	}
	return nil
}

// Apply removes waived indicators from a report and refolds the score.
// The returned report's score reflects only the indicators that remain.
func (m *Manager) Apply(documentKey string, report *fraud.Report) (*fraud.Report, []WaiverRule) {
	if report == nil {
		return nil, nil
	}
	if !m.enabled || len(report.Indicators) == 0 {
		return report, nil
	}

	var kept []fraud.Indicator
	var applied []WaiverRule
	for _, ind := range report.Indicators {
		if waived, rule := m.IsWaived(documentKey, ind); waived {
			applied = append(applied, *rule)
			continue
		}
		kept = append(kept, ind)
	}

	if len(applied) == 0 {
		return report, nil
	}
	return fraud.BuildReport(kept), applied
}
