// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/fraud"
	"veridoc/internal/review"
)

// DocumentResult is the full pipeline output for one document: corrected
// fields, per-field validation outcomes, and the fraud assessment.
type DocumentResult struct {
	CorrectedData     map[string]string           `json:"correctedData"`
	Outcomes          map[string]document.Outcome `json:"outcomes"`
	Corrections       []string                    `json:"ocrCorrections"`
	OverallConfidence float64                     `json:"overallConfidence"`
	IllegibleFields   []string                    `json:"illegibleFields"`
	FraudAnalysis     *fraud.Report               `json:"fraudAnalysis"`
	WaiversApplied    []review.WaiverRule         `json:"waiversApplied,omitempty"`
}

// Analyzer runs the whole pipeline: field validation and correction, then
// cross-field fraud analysis over the corrected data, then reviewer
// waivers over the triggered indicators.
type Analyzer struct {
	processor *Processor
	waivers   *review.Manager
}

// NewAnalyzer builds an analyzer with the given validator set. A nil
// waiver manager disables the review stage.
func NewAnalyzer(processor *Processor, waivers *review.Manager) *Analyzer {
	return &Analyzer{processor: processor, waivers: waivers}
}

// Analyze runs the pipeline with the current wall clock.
func (a *Analyzer) Analyze(fields document.FieldMap, meta document.Metadata) *DocumentResult {
	return a.analyze(fields, meta, fraud.Input{})
}

// AnalyzeAt runs the pipeline with an explicit reference time, used by
// tests and by batch re-analysis of historical captures.
func (a *Analyzer) AnalyzeAt(fields document.FieldMap, meta document.Metadata, in fraud.Input) *DocumentResult {
	return a.analyze(fields, meta, in)
}

func (a *Analyzer) analyze(fields document.FieldMap, meta document.Metadata, in fraud.Input) *DocumentResult {
	processed := a.processor.Process(fields)

	in.Data = processed.CorrectedData
	in.Metadata = meta
	in.IllegibleFields = processed.IllegibleFields

	var report *fraud.Report
	if in.Now.IsZero() {
		report = fraud.Analyze(in.Data, in.Metadata, in.IllegibleFields)
	} else {
		report = fraud.AnalyzeAt(in)
	}

	var applied []review.WaiverRule
	if a.waivers != nil {
		report, applied = a.waivers.Apply(documentKey(processed.CorrectedData), report)
	}

	return &DocumentResult{
		CorrectedData:     processed.CorrectedData,
		Outcomes:          processed.Outcomes,
		Corrections:       processed.Corrections,
		OverallConfidence: processed.OverallConfidence,
		IllegibleFields:   processed.IllegibleFields,
		FraudAnalysis:     report,
		WaiversApplied:    applied,
	}
}

// documentKey picks the most stable identifier present for waiver
// fingerprinting. CURP first, then RFC, then CLABE.
func documentKey(data map[string]string) string {
	for _, field := range []string{"curp", "rfc", "clabe"} {
		for k, v := range data {
			if strings.EqualFold(k, field) && v != "" {
				return v
			}
		}
	}
	return ""
}
