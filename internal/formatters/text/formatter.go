// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"veridoc/internal/core"
	"veridoc/internal/formatters"
	"veridoc/internal/formatters/shared"
	"veridoc/internal/fraud"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *core.DocumentResult, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if result == nil {
		return "No document processed.", nil
	}

	var builder strings.Builder

	fields := shared.FilterOutcomes(result.Outcomes, options)
	f.appendFields(&builder, fields, options)
	f.appendCorrections(&builder, result, options)
	f.appendIllegible(&builder, result)
	f.appendFraud(&builder, result.FraudAnalysis)

	builder.WriteString(fmt.Sprintf("\nOverall confidence: %s\n",
		f.confidenceColor(result.OverallConfidence).Sprintf("%.2f", result.OverallConfidence)))

	return builder.String(), nil
}

func (f *Formatter) appendFields(builder *strings.Builder, fields []shared.FieldResult, options formatters.FormatterOptions) {
	if len(fields) == 0 {
		builder.WriteString("No fields validated at the specified confidence levels.\n")
		return
	}

	builder.WriteString(f.colors["white"].Sprint("Validated fields:") + "\n")
	for _, fr := range fields {
		status := f.colors["green"].Sprint("VALID")
		if !fr.Valid {
			status = f.colors["red"].Sprint("INVALID")
		}
		builder.WriteString(fmt.Sprintf("  %-16s %-18s %s (%s)\n",
			strings.ToUpper(fr.Field),
			fr.Corrected,
			status,
			f.confidenceColor(fr.Confidence).Sprintf("%.2f %s", fr.Confidence, fr.ConfidenceLevel)))
		if options.Verbose {
			for _, c := range fr.Corrections {
				builder.WriteString("      " + f.colors["cyan"].Sprint(c) + "\n")
			}
		}
	}
}

func (f *Formatter) appendCorrections(builder *strings.Builder, result *core.DocumentResult, options formatters.FormatterOptions) {
	if len(result.Corrections) == 0 || !options.ShowValues {
		return
	}
	builder.WriteString("\n" + f.colors["white"].Sprint("OCR corrections:") + "\n")
	for _, c := range result.Corrections {
		builder.WriteString("  " + f.colors["cyan"].Sprint(c) + "\n")
	}
}

func (f *Formatter) appendIllegible(builder *strings.Builder, result *core.DocumentResult) {
	if len(result.IllegibleFields) == 0 {
		return
	}
	builder.WriteString("\n" + f.colors["white"].Sprint("Illegible fields:") + " " +
		f.colors["yellow"].Sprint(strings.Join(result.IllegibleFields, ", ")) + "\n")
}

func (f *Formatter) appendFraud(builder *strings.Builder, report *fraud.Report) {
	if report == nil {
		return
	}

	verdict := f.colors["green"].Sprint("AUTHENTIC")
	if !report.IsAuthentic {
		verdict = f.colors["red"].Sprint("SUSPECT")
	}
	builder.WriteString(fmt.Sprintf("\n%s %s  risk %s (%d/100)\n",
		f.colors["white"].Sprint("Fraud assessment:"),
		verdict,
		f.riskColor(report.RiskLevel).Sprint(strings.ToUpper(string(report.RiskLevel))),
		report.RiskScore))

	for _, ind := range report.Indicators {
		line := fmt.Sprintf("  [%s] %s", strings.ToUpper(string(ind.Severity)), ind.Message)
		if ind.Field != "" {
			line += " (" + ind.Field + ")"
		}
		builder.WriteString(f.severityColor(ind.Severity).Sprint(line) + "\n")
	}

	for _, rec := range report.Recommendations {
		builder.WriteString("  > " + rec + "\n")
	}
}

func (f *Formatter) confidenceColor(confidence float64) *color.Color {
	switch shared.GetConfidenceLevel(confidence) {
	case "HIGH":
		return f.colors["green"]
	case "MEDIUM":
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}

func (f *Formatter) riskColor(level fraud.RiskLevel) *color.Color {
	switch level {
	case fraud.RiskLow:
		return f.colors["green"]
	case fraud.RiskMedium:
		return f.colors["yellow"]
	case fraud.RiskHigh:
		return f.colors["red"]
	default:
		return f.colors["magenta"]
	}
}

func (f *Formatter) severityColor(severity fraud.Severity) *color.Color {
	switch severity {
	case fraud.SeverityInfo:
		return f.colors["cyan"]
	case fraud.SeverityWarning:
		return f.colors["yellow"]
	case fraud.SeverityError:
		return f.colors["red"]
	default:
		return f.colors["magenta"]
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
