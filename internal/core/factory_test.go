// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"veridoc/internal/document"
)

func TestParseChecksToRun_All(t *testing.T) {
	for _, checks := range [][]string{nil, {}, {"all"}, {"ALL"}} {
		result := ParseChecksToRun(checks)
		for name, enabled := range result {
			if !enabled {
				t.Errorf("ParseChecksToRun(%v): check %s should be enabled", checks, name)
			}
		}
	}
}

func TestParseChecksToRun_Subset(t *testing.T) {
	result := ParseChecksToRun([]string{"curp", " CLABE ", "bogus"})

	if !result["CURP"] || !result["CLABE"] {
		t.Error("named checks should be enabled regardless of case and spacing")
	}
	if result["RFC"] || result["VIN"] || result["NSS"] || result["PLACAS"] {
		t.Error("unnamed checks should stay disabled")
	}
	if _, exists := result["BOGUS"]; exists {
		t.Error("unknown check names must not be added to the map")
	}
}

func TestBuildValidatorSet(t *testing.T) {
	all := BuildValidatorSet(ParseChecksToRun(nil))
	if len(all) != 6 {
		t.Fatalf("expected 6 validators, got %d", len(all))
	}
	for kind, v := range all {
		if v.Kind() != kind {
			t.Errorf("validator registered under %s reports kind %s", kind, v.Kind())
		}
	}

	subset := BuildValidatorSet(ParseChecksToRun([]string{"VIN"}))
	if len(subset) != 1 {
		t.Fatalf("expected 1 validator, got %d", len(subset))
	}
	if _, ok := subset[document.KindVIN]; !ok {
		t.Error("expected the VIN validator")
	}
}

func TestApplyConfidenceFloors(t *testing.T) {
	set := BuildValidatorSet(ParseChecksToRun([]string{"PLACAS", "VIN"}))
	set = ApplyConfidenceFloors(set, map[string]float64{"PLACAS": 0.9})

	// A valid plate scores 0.85, below the configured floor of 0.9.
	out := set[document.KindPlate].Validate("ABC1234")
	if out.Valid {
		t.Error("plate outcome below the confidence floor should not be valid")
	}
	if out.Corrected != "ABC1234" {
		t.Errorf("floor must not touch the corrected value, got %q", out.Corrected)
	}

	// Validators without a configured floor are untouched.
	out = set[document.KindVIN].Validate("1HGCM82633A004352")
	if !out.Valid {
		t.Error("VIN validator should be unaffected by another check's floor")
	}
}

func TestApplyConfidenceFloors_ZeroFloorIgnored(t *testing.T) {
	set := BuildValidatorSet(ParseChecksToRun([]string{"PLACAS"}))
	set = ApplyConfidenceFloors(set, map[string]float64{"PLACAS": 0})

	if out := set[document.KindPlate].Validate("ABC1234"); !out.Valid {
		t.Error("a zero floor must leave the validator unwrapped")
	}
}

func TestParseConfidenceLevels(t *testing.T) {
	tests := []struct {
		input string
		want  map[string]bool
	}{
		{"all", map[string]bool{"high": true, "medium": true, "low": true}},
		{"", map[string]bool{"high": true, "medium": true, "low": true}},
		{"high", map[string]bool{"high": true, "medium": false, "low": false}},
		{"high,medium", map[string]bool{"high": true, "medium": true, "low": false}},
		{" High , LOW ", map[string]bool{"high": true, "medium": false, "low": true}},
	}

	for _, tt := range tests {
		got := ParseConfidenceLevels(tt.input)
		for level, want := range tt.want {
			if got[level] != want {
				t.Errorf("ParseConfidenceLevels(%q)[%s] = %v, want %v", tt.input, level, got[level], want)
			}
		}
	}
}
