// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"veridoc/internal/core"
	"veridoc/internal/formatters"
	"veridoc/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(result *core.DocumentResult, options formatters.FormatterOptions) (string, error) {
	if result == nil {
		return "", nil
	}

	headers := []string{"Field", "Valid", "Confidence Level", "Confidence", "Original", "Corrected"}
	if options.Verbose {
		headers = append(headers, "Corrections")
	}

	csvRows := []string{strings.Join(headers, ",")}

	verboseOptions := options
	verboseOptions.Verbose = true
	for _, fr := range shared.FilterOutcomes(result.Outcomes, verboseOptions) {
		row := []string{
			f.escapeCSVField(fr.Field),
			fmt.Sprintf("%t", fr.Valid),
			f.escapeCSVField(fr.ConfidenceLevel),
			fmt.Sprintf("%.2f", fr.Confidence),
			f.escapeCSVField(fr.Original),
			f.escapeCSVField(fr.Corrected),
		}
		if options.Verbose {
			row = append(row, f.escapeCSVField(strings.Join(fr.Corrections, "; ")))
		}
		csvRows = append(csvRows, strings.Join(row, ","))
	}

	// Fraud indicators go in a second section so both fit one file.
	if result.FraudAnalysis != nil && len(result.FraudAnalysis.Indicators) > 0 {
		csvRows = append(csvRows, "")
		csvRows = append(csvRows, "Indicator,Severity,Field,Message")
		for _, ind := range result.FraudAnalysis.Indicators {
			csvRows = append(csvRows, strings.Join([]string{
				f.escapeCSVField(string(ind.Kind)),
				f.escapeCSVField(string(ind.Severity)),
				f.escapeCSVField(ind.Field),
				f.escapeCSVField(ind.Message),
			}, ","))
		}
	}

	return strings.Join(csvRows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	// Prevent CSV injection by sanitizing formula characters
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	// Fields starting with formula characters are dangerous in spreadsheets
	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
