// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package review

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"veridoc/internal/fraud"
)

func newTestIndicator(kind fraud.IndicatorKind, field string, delta int) fraud.Indicator {
	return fraud.Indicator{
		Kind:     kind,
		Severity: fraud.SeverityError,
		Field:    field,
		Message:  "test indicator",
		Delta:    delta,
	}
}

func TestNewManager_NoFile(t *testing.T) {
	m := NewManager("/nonexistent/path.yaml")
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if len(m.ListWaivers()) != 0 {
		t.Error("expected empty rule set for missing file")
	}
}

func TestAddAndIsWaived(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)
	ind := newTestIndicator(fraud.IndicatorExpiredDocument, "vigencia", 20)

	if err := m.AddWaiver("PEGJ850101HDFRRL04", ind, "renewal in progress", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	waived, rule := m.IsWaived("PEGJ850101HDFRRL04", ind)
	if !waived {
		t.Error("indicator should be waived")
	}
	if rule == nil {
		t.Fatal("expected non-nil rule")
	}
	if rule.Reason != "renewal in progress" {
		t.Errorf("expected reason 'renewal in progress', got %q", rule.Reason)
	}
	if rule.ID != "WVR-00000001" {
		t.Errorf("expected sequential ID, got %q", rule.ID)
	}
}

func TestIsWaived_DifferentDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)
	ind := newTestIndicator(fraud.IndicatorExpiredDocument, "vigencia", 20)

	if err := m.AddWaiver("PEGJ850101HDFRRL04", ind, "reviewed", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	if waived, _ := m.IsWaived("GOMC920315MDFNRL08", ind); waived {
		t.Error("waiver must not transfer between documents")
	}
}

func TestAddWaiver_Duplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)
	ind := newTestIndicator(fraud.IndicatorSuspiciousName, "nombre", 20)

	if err := m.AddWaiver("key", ind, "first", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}
	if err := m.AddWaiver("key", ind, "second", "reviewer", nil); err == nil {
		t.Error("expected error adding duplicate waiver")
	}
}

func TestRemoveWaiver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)
	ind := newTestIndicator(fraud.IndicatorGenderMismatch, "sexo", 25)

	if err := m.AddWaiver("key", ind, "reviewed", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}
	rules := m.ListWaivers()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	if err := m.RemoveWaiver(rules[0].ID); err != nil {
		t.Fatalf("RemoveWaiver failed: %v", err)
	}
	if waived, _ := m.IsWaived("key", ind); waived {
		t.Error("indicator should not be waived after removal")
	}
}

func TestExpiredWaiverIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)
	ind := newTestIndicator(fraud.IndicatorDistantExpiry, "vigencia", 25)

	past := time.Now().Add(-time.Hour)
	if err := m.AddWaiver("key", ind, "was reviewed", "reviewer", &past); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	if waived, _ := m.IsWaived("key", ind); waived {
		t.Error("expired waiver must not match")
	}
	removed, err := m.CleanupExpired()
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 expired rule removed, got %d", removed)
	}
}

func TestCleanupExpired_PersistFailure(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "waivers.yaml"))
	ind := newTestIndicator(fraud.IndicatorDistantExpiry, "vigencia", 25)

	past := time.Now().Add(-time.Hour)
	if err := m.AddWaiver("key", ind, "was reviewed", "reviewer", &past); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	// Point the persist path under a regular file so the save fails.
	plain := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(plain, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	m.configPath = filepath.Join(plain, "waivers.yaml")

	removed, err := m.CleanupExpired()
	if err == nil {
		t.Error("a failed persist must surface an error")
	}
	if removed != 1 {
		t.Errorf("expected 1 rule removed in memory, got %d", removed)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	ind := newTestIndicator(fraud.IndicatorRFCCURPMismatch, "rfc", 40)

	m1 := NewManager(path)
	if err := m1.AddWaiver("key", ind, "checked against registry", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	m2 := NewManager(path)
	waived, rule := m2.IsWaived("key", ind)
	if !waived {
		t.Error("waiver should survive reload")
	}
	if rule != nil && rule.Reason != "checked against registry" {
		t.Errorf("unexpected reason after reload: %q", rule.Reason)
	}
}

func TestApply_RefoldsScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	m := NewManager(path)

	waivable := newTestIndicator(fraud.IndicatorExpiredDocument, "vigencia", 20)
	other := newTestIndicator(fraud.IndicatorInvalidStateCode, "curp", 30)
	report := fraud.BuildReport([]fraud.Indicator{waivable, other})
	if report.RiskScore != 50 {
		t.Fatalf("expected base score 50, got %d", report.RiskScore)
	}

	if err := m.AddWaiver("key", waivable, "renewal pending", "reviewer", nil); err != nil {
		t.Fatalf("AddWaiver failed: %v", err)
	}

	applied, waived := m.Apply("key", report)
	if len(waived) != 1 {
		t.Fatalf("expected 1 applied waiver, got %d", len(waived))
	}
	if applied.RiskScore != 30 {
		t.Errorf("expected refolded score 30, got %d", applied.RiskScore)
	}
	if len(applied.Indicators) != 1 {
		t.Errorf("expected 1 remaining indicator, got %d", len(applied.Indicators))
	}
	if applied.RiskLevel != fraud.RiskMedium {
		t.Errorf("expected medium risk after waiver, got %s", applied.RiskLevel)
	}
}

func TestApply_NoWaivers(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "waivers.yaml"))
	report := fraud.BuildReport([]fraud.Indicator{
		newTestIndicator(fraud.IndicatorSuspiciousName, "nombre", 20),
	})

	applied, waived := m.Apply("key", report)
	if applied != report {
		t.Error("report without matching waivers should be returned unchanged")
	}
	if waived != nil {
		t.Error("expected no applied waivers")
	}
}
