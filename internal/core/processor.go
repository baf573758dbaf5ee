// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core orchestrates the validation pipeline: it walks an extracted
// field map, routes each known field to its validator, and aggregates the
// corrected values, the correction log, and a combined confidence score.
package core

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/observability"
)

// ProcessResult holds the outcome of post-processing one extracted field
// map. CorrectedData preserves unvalidated and illegible fields verbatim.
type ProcessResult struct {
	CorrectedData     map[string]string           `json:"correctedData"`
	Outcomes          map[string]document.Outcome `json:"outcomes"`
	Corrections       []string                    `json:"ocrCorrections"`
	OverallConfidence float64                     `json:"overallConfidence"`
	IllegibleFields   []string                    `json:"illegibleFields"`
}

// Processor runs the extraction post-processing stage. Zero-value
// construction is not supported; use NewProcessor.
type Processor struct {
	validators map[document.FieldKind]document.FieldValidator
	observer   *observability.StandardObserver
}

// NewProcessor builds a processor over the given validator set. Pass the
// result of BuildValidatorSet, or nil to enable every check.
func NewProcessor(validators map[document.FieldKind]document.FieldValidator) *Processor {
	if validators == nil {
		validators = BuildValidatorSet(ParseChecksToRun(nil))
	}
	return &Processor{
		validators: validators,
		observer:   observability.NewStandardObserver(observability.ObservabilityOff, os.Stderr),
	}
}

// SetObserver sets the observability component.
func (p *Processor) SetObserver(observer *observability.StandardObserver) {
	if observer != nil {
		p.observer = observer
	}
}

// Process validates every recognized, legible field in the map. It never
// fails: absent, empty, or unrecognized fields are passed through, and
// illegible values are copied verbatim and recorded separately.
func (p *Processor) Process(fields document.FieldMap) *ProcessResult {
	finish := p.observer.StartTiming("processor", "process_fields", "")

	result := &ProcessResult{
		CorrectedData: make(map[string]string, len(fields)),
		Outcomes:      make(map[string]document.Outcome),
	}

	// Map iteration order is randomized; sort so the correction log and
	// the illegible-field list are stable across calls.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var confidenceSum float64
	var confidenceCount int

	for _, key := range keys {
		value := fields[key]
		if value == "" {
			continue
		}

		if document.FullyIllegible(value) || document.PartiallyIllegible(value) {
			result.CorrectedData[key] = value
			result.IllegibleFields = append(result.IllegibleFields, key)
			continue
		}

		switch kind := document.KindForField(key); kind {
		case document.KindName:
			result.CorrectedData[key] = formatName(value)
		case document.KindOther:
			result.CorrectedData[key] = value
		default:
			validator, ok := p.validators[kind]
			if !ok {
				result.CorrectedData[key] = value
				continue
			}
			outcome := validator.Validate(value)
			result.Outcomes[key] = outcome
			result.CorrectedData[key] = outcome.Corrected
			if outcome.Corrected != value {
				result.Corrections = append(result.Corrections,
					fmt.Sprintf("%s: %q → %q", strings.ToUpper(key), value, outcome.Corrected))
			}
			confidenceSum += outcome.Confidence
			confidenceCount++
		}
	}

	if confidenceCount > 0 {
		result.OverallConfidence = confidenceSum / float64(confidenceCount)
	} else {
		result.OverallConfidence = 0.3
	}

	finish(true, map[string]interface{}{
		"field_count":      len(fields),
		"validated_count":  confidenceCount,
		"illegible_count":  len(result.IllegibleFields),
		"correction_count": len(result.Corrections),
	})

	return result
}

// formatName applies the light formatting name fields get: trim, collapse
// internal whitespace, upper-case. No checksum, no confidence contribution.
func formatName(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), " "))
}
