// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"testing"

	"veridoc/internal/core"
	"veridoc/internal/document"
	"veridoc/internal/formatters"
	"veridoc/internal/fraud"
)

func allLevels() map[string]bool {
	return map[string]bool{"high": true, "medium": true, "low": true}
}

func TestFormat_RoundTrips(t *testing.T) {
	f := NewFormatter()
	result := &core.DocumentResult{
		CorrectedData: map[string]string{"curp": "PEGJ850101HDFRRL04"},
		Outcomes: map[string]document.Outcome{
			"curp": {Valid: true, Original: "PEGJ850101HDFRRL04", Corrected: "PEGJ850101HDFRRL04", Confidence: 1.0},
		},
		OverallConfidence: 1.0,
		FraudAnalysis:     fraud.BuildReport(nil),
	}

	out, err := f.Format(result, formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
		ShowValues:      true,
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["correctedData"]; !ok {
		t.Error("expected correctedData key in output")
	}
	if _, ok := decoded["fraudAnalysis"]; !ok {
		t.Error("expected fraudAnalysis key in output")
	}
}

func TestFormat_NilResult(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(nil, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "{}" {
		t.Errorf("expected empty object, got %q", out)
	}
}

func TestRegistered(t *testing.T) {
	if _, ok := formatters.Get("json"); !ok {
		t.Error("json formatter should self-register")
	}
}
