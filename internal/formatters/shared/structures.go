// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sort"

	"veridoc/internal/core"
	"veridoc/internal/document"
	"veridoc/internal/formatters"
)

// Response is the top-level structure for JSON/YAML output. It mirrors the
// pipeline result but applies confidence filtering and value masking.
type Response struct {
	CorrectedData     map[string]string    `json:"correctedData" yaml:"correctedData"`
	Fields            []FieldResult        `json:"fields" yaml:"fields"`
	Corrections       []string             `json:"ocrCorrections,omitempty" yaml:"ocrCorrections,omitempty"`
	OverallConfidence float64              `json:"overallConfidence" yaml:"overallConfidence"`
	IllegibleFields   []string             `json:"illegibleFields,omitempty" yaml:"illegibleFields,omitempty"`
	FraudAnalysis     interface{}          `json:"fraudAnalysis,omitempty" yaml:"fraudAnalysis,omitempty"`
	WaiversApplied    interface{}          `json:"waiversApplied,omitempty" yaml:"waiversApplied,omitempty"`
}

// FieldResult is one validated field in JSON/YAML format
type FieldResult struct {
	Field           string   `json:"field" yaml:"field"`
	Valid           bool     `json:"valid" yaml:"valid"`
	Original        string   `json:"originalValue" yaml:"originalValue"`
	Corrected       string   `json:"corrected" yaml:"corrected"`
	Confidence      float64  `json:"confidence" yaml:"confidence"`
	ConfidenceLevel string   `json:"confidence_level" yaml:"confidence_level"`
	Corrections     []string `json:"corrections,omitempty" yaml:"corrections,omitempty"`
}

// GetConfidenceLevel returns the confidence level as a string
func GetConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "HIGH"
	case confidence >= 0.6:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// levelEnabled applies the confidence-level filter to one outcome
func levelEnabled(confidence float64, options formatters.FormatterOptions) bool {
	if options.ConfidenceLevel == nil {
		return true
	}
	switch GetConfidenceLevel(confidence) {
	case "HIGH":
		return options.ConfidenceLevel["high"]
	case "MEDIUM":
		return options.ConfidenceLevel["medium"]
	default:
		return options.ConfidenceLevel["low"]
	}
}

// FilterOutcomes selects the field outcomes that pass the confidence-level
// filter, sorted by field name for stable output.
func FilterOutcomes(outcomes map[string]document.Outcome, options formatters.FormatterOptions) []FieldResult {
	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []FieldResult
	for _, name := range names {
		outcome := outcomes[name]
		if !levelEnabled(outcome.Confidence, options) {
			continue
		}
		fr := FieldResult{
			Field:           name,
			Valid:           outcome.Valid,
			Confidence:      outcome.Confidence,
			ConfidenceLevel: GetConfidenceLevel(outcome.Confidence),
		}
		if options.ShowValues {
			fr.Original = outcome.Original
			fr.Corrected = outcome.Corrected
		} else {
			fr.Original = MaskValue(outcome.Original)
			fr.Corrected = MaskValue(outcome.Corrected)
		}
		if options.Verbose {
			fr.Corrections = outcome.Corrections
		}
		results = append(results, fr)
	}
	return results
}

// MaskValue hides the middle of an identifier, keeping enough of each end
// to recognize the field without exposing the full value.
func MaskValue(value string) string {
	runes := []rune(value)
	if len(runes) <= 6 {
		return "[REDACTED]"
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < 3 || i >= len(runes)-3 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}

// ConvertResult converts a pipeline result to the JSON/YAML response shape
func ConvertResult(result *core.DocumentResult, options formatters.FormatterOptions) Response {
	resp := Response{
		Fields:            FilterOutcomes(result.Outcomes, options),
		OverallConfidence: result.OverallConfidence,
		IllegibleFields:   result.IllegibleFields,
	}

	if options.ShowValues {
		// The correction log quotes raw values, so it is only emitted
		// when values are shown.
		resp.Corrections = result.Corrections
		resp.CorrectedData = result.CorrectedData
	} else {
		masked := make(map[string]string, len(result.CorrectedData))
		for k, v := range result.CorrectedData {
			masked[k] = MaskValue(v)
		}
		resp.CorrectedData = masked
	}

	if result.FraudAnalysis != nil {
		resp.FraudAnalysis = result.FraudAnalysis
	}
	if len(result.WaiversApplied) > 0 {
		resp.WaiversApplied = result.WaiversApplied
	}

	return resp
}
