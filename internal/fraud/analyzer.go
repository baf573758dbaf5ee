// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fraud cross-validates the corrected fields of a document against
// each other and against real-world date and identity constraints. Every
// rule is evaluated independently; triggered rules append an indicator
// with an additive score delta, and no rule suppresses another.
package fraud

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"veridoc/internal/document"
)

// Input bundles everything one analysis needs. Data is the corrected field
// map from the extraction post-processor.
type Input struct {
	Data            map[string]string
	Metadata        document.Metadata
	IllegibleFields []string
	Now             time.Time
}

// field fetches a value by key, tolerating the case variations the
// extraction stage produces.
func (in Input) field(name string) string {
	if v, ok := in.Data[name]; ok {
		return strings.TrimSpace(v)
	}
	lower := strings.ToLower(name)
	for k, v := range in.Data {
		if strings.ToLower(k) == lower {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// rule evaluates one independent consistency check and returns the
// indicators it triggered.
type rule func(in Input) []Indicator

// rules is the ordered evaluation sequence. Order only affects indicator
// ordering in the report, never scoring.
var rules = []rule{
	checkImageQuality,
	checkIllegibleFields,
	checkStateCode,
	checkGender,
	checkBirthDate,
	checkBirthDateCross,
	checkRFCAgainstCURP,
	checkExpiry,
	checkName,
	checkVehicle,
}

// Analyze runs every rule against the document at the current time.
func Analyze(data map[string]string, meta document.Metadata, illegibleFields []string) *Report {
	return AnalyzeAt(Input{
		Data:            data,
		Metadata:        meta,
		IllegibleFields: illegibleFields,
		Now:             time.Now(),
	})
}

// AnalyzeAt runs every rule with an explicit reference time and folds the
// triggered indicators into a report. Deterministic for a fixed Now.
func AnalyzeAt(in Input) *Report {
	var indicators []Indicator
	for _, r := range rules {
		indicators = append(indicators, r(in)...)
	}
	return BuildReport(indicators)
}

// BuildReport folds an indicator list into a report: deltas are summed,
// the score is clamped to [0,100], and the risk band drives authenticity
// and the recommendation list. Callers that filter indicators (review
// waivers) rebuild the report from what remains.
func BuildReport(indicators []Indicator) *Report {
	score := 0
	for _, ind := range indicators {
		score += ind.Delta
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := riskLevelFor(score)
	return &Report{
		IsAuthentic:     level != RiskHigh && level != RiskCritical,
		RiskLevel:       level,
		RiskScore:       score,
		Indicators:      indicators,
		Recommendations: recommendationsFor(level, indicators),
	}
}

// --- rules ---

func checkImageQuality(in Input) []Indicator {
	q := strings.ToLower(strings.TrimSpace(in.Metadata.ImageQuality))
	if q != "mala" && q != "ilegible" {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorPoorImageQuality,
		Severity: SeverityWarning,
		Message:  "image quality reported as " + q,
		Detail:   "low-quality captures hide alterations and inflate OCR errors",
		Delta:    15,
	}}
}

func checkIllegibleFields(in Input) []Indicator {
	n := len(in.IllegibleFields)
	if n < 3 {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorIllegibleFields,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%d fields could not be read", n),
		Detail:   strings.Join(in.IllegibleFields, ", "),
		Delta:    10 * n,
	}}
}

func checkStateCode(in Input) []Indicator {
	curp := in.field("curp")
	state := StateCodeFromCURP(curp)
	if state == "" || curpStateCodes[state] {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorInvalidStateCode,
		Severity: SeverityError,
		Field:    "curp",
		Message:  fmt.Sprintf("state code %q is not a valid registry entry", state),
		Delta:    30,
	}}
}

func checkGender(in Input) []Indicator {
	curpGender := GenderFromCURP(in.field("curp"))
	declared := normalizeGender(in.field("sexo"))
	if curpGender == "" || declared == "" || curpGender == declared {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorGenderMismatch,
		Severity: SeverityError,
		Field:    "sexo",
		Message:  fmt.Sprintf("declared gender %q contradicts the CURP (%s)", in.field("sexo"), curpGender),
		Delta:    25,
	}}
}

// checkBirthDate covers the three age rules derived from the CURP birth
// date: future dates, impossible ages, and underage license holders.
func checkBirthDate(in Input) []Indicator {
	birth, err := BirthDateFromCURP(in.field("curp"))
	if err != nil {
		return nil
	}

	var inds []Indicator
	if birth.After(in.Now) {
		inds = append(inds, Indicator{
			Kind:     IndicatorFutureBirthDate,
			Severity: SeverityCritical,
			Field:    "curp",
			Message:  "CURP encodes a birth date in the future",
			Detail:   birth.Format("2006-01-02"),
			Delta:    50,
		})
	}
	age := ageAt(birth, in.Now)
	if age > 130 {
		inds = append(inds, Indicator{
			Kind:     IndicatorImpossibleAge,
			Severity: SeverityCritical,
			Field:    "curp",
			Message:  fmt.Sprintf("derived age of %d years is not plausible", age),
			Delta:    50,
		})
	}
	if age >= 0 && age < 16 && in.Metadata.DrivingLicense() {
		inds = append(inds, Indicator{
			Kind:     IndicatorUnderageLicense,
			Severity: SeverityError,
			Field:    "curp",
			Message:  fmt.Sprintf("holder is %d years old, below the driving-license minimum", age),
			Delta:    30,
		})
	}
	return inds
}

func checkBirthDateCross(in Input) []Indicator {
	curpBirth, err := BirthDateFromCURP(in.field("curp"))
	if err != nil {
		return nil
	}
	declared, ok := parseDate(in.field("fechaNacimiento"))
	if !ok {
		return nil
	}
	diff := curpBirth.Sub(declared)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 24*time.Hour {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorBirthDateMismatch,
		Severity: SeverityError,
		Field:    "fechaNacimiento",
		Message:  "declared birth date does not match the CURP",
		Detail: fmt.Sprintf("curp: %s, declared: %s",
			curpBirth.Format("2006-01-02"), declared.Format("2006-01-02")),
		Delta: 35,
	}}
}

func checkRFCAgainstCURP(in Input) []Indicator {
	curp := []rune(in.field("curp"))
	rfc := []rune(in.field("rfc"))
	if len(curp) != 18 || len(rfc) != 13 {
		return nil
	}
	if string(rfc[:10]) == string(curp[:10]) {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorRFCCURPMismatch,
		Severity: SeverityError,
		Field:    "rfc",
		Message:  "RFC does not agree with the CURP on name letters and birth date",
		Detail:   fmt.Sprintf("rfc: %s, curp: %s", string(rfc[:10]), string(curp[:10])),
		Delta:    40,
	}}
}

func checkExpiry(in Input) []Indicator {
	value := in.field("vigenciaFin")
	field := "vigenciaFin"
	if value == "" {
		value = in.field("vigencia")
		field = "vigencia"
	}
	expiry, ok := parseDate(value)
	if !ok {
		return nil
	}

	var inds []Indicator
	if expiry.Before(in.Now) {
		inds = append(inds, Indicator{
			Kind:     IndicatorExpiredDocument,
			Severity: SeverityWarning,
			Field:    field,
			Message:  "document expired on " + expiry.Format("2006-01-02"),
			Delta:    20,
		})
	}
	if expiry.After(in.Now.AddDate(20, 0, 0)) {
		inds = append(inds, Indicator{
			Kind:     IndicatorDistantExpiry,
			Severity: SeverityError,
			Field:    field,
			Message:  "expiry date is more than 20 years away",
			Detail:   expiry.Format("2006-01-02"),
			Delta:    25,
		})
	}
	return inds
}

// placeholderNames are values the upstream stage or test fixtures emit in
// place of a real holder name.
var placeholderNames = []string{
	"test", "prueba", "ejemplo", "example", "demo", "sample",
	"juan perez", "john doe", "jane doe", "fulano", "xxxx", "n/a",
}

func checkName(in Input) []Indicator {
	name := in.field("nombre")
	if name == "" {
		return nil
	}

	suspicious := len([]rune(name)) < 5 || repeatedRun(name, 4)
	lower := strings.ToLower(name)
	for _, p := range placeholderNames {
		if strings.Contains(lower, p) {
			suspicious = true
			break
		}
	}
	if !suspicious {
		return nil
	}
	return []Indicator{{
		Kind:     IndicatorSuspiciousName,
		Severity: SeverityWarning,
		Field:    "nombre",
		Message:  fmt.Sprintf("holder name %q looks like a placeholder", name),
		Delta:    20,
	}}
}

// checkVehicle covers the VIN shape and model-year rules, which only apply
// to vehicle-class documents.
func checkVehicle(in Input) []Indicator {
	if !in.Metadata.VehicleDocument() {
		return nil
	}

	var inds []Indicator
	if vin := in.field("vin"); vin != "" {
		if len([]rune(vin)) != 17 {
			inds = append(inds, Indicator{
				Kind:     IndicatorMalformedVIN,
				Severity: SeverityError,
				Field:    "vin",
				Message:  fmt.Sprintf("VIN has %d characters, want 17", len([]rune(vin))),
				Delta:    25,
			})
		} else if strings.ContainsAny(vin, "IOQ") {
			inds = append(inds, Indicator{
				Kind:     IndicatorMalformedVIN,
				Severity: SeverityWarning,
				Field:    "vin",
				Message:  "VIN contains letters excluded by the standard (I, O, Q)",
				Delta:    15,
			})
		}
	}

	if yearStr := in.field("anio"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			if year < 1900 || year > in.Now.Year()+1 {
				inds = append(inds, Indicator{
					Kind:     IndicatorImpossibleVehicleYear,
					Severity: SeverityError,
					Field:    "anio",
					Message:  fmt.Sprintf("model year %d is outside the plausible range", year),
					Delta:    30,
				})
			}
		}
	}
	return inds
}

// --- helpers ---

// normalizeGender reduces the declared gender field to the CURP convention:
// H (hombre) or M (mujer).
func normalizeGender(declared string) string {
	d := strings.ToUpper(strings.TrimSpace(declared))
	switch {
	case d == "":
		return ""
	case d == "H" || strings.HasPrefix(d, "HOM") || strings.HasPrefix(d, "MASC"):
		return "H"
	case d == "M" || d == "F" || strings.HasPrefix(d, "MUJ") || strings.HasPrefix(d, "FEM"):
		return "M"
	}
	return ""
}

// dateLayouts are the formats the extraction stage emits for dates.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
}

// parseDate parses a declared date field. A bare year is read as the last
// day of that year, which is how validity years are printed on plates and
// circulation cards.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.UTC(), true
		}
	}
	if year, err := strconv.Atoi(value); err == nil && year >= 1900 && year <= 2200 {
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// repeatedRun reports whether the value contains n identical consecutive
// non-space characters.
func repeatedRun(value string, n int) bool {
	run := 0
	var prev rune
	for _, r := range value {
		if r == prev && r != ' ' {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}
