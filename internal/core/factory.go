// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/validators/clabe"
	"veridoc/internal/validators/curp"
	"veridoc/internal/validators/nss"
	"veridoc/internal/validators/plate"
	"veridoc/internal/validators/rfc"
	"veridoc/internal/validators/vin"
)

// BuildValidatorSet constructs the standard set of field validators
// filtered by the enabled checks map.
func BuildValidatorSet(enabledChecks map[string]bool) map[document.FieldKind]document.FieldValidator {
	result := make(map[document.FieldKind]document.FieldValidator)

	if enabledChecks["CURP"] {
		result[document.KindCURP] = curp.NewValidator()
	}
	if enabledChecks["RFC"] {
		result[document.KindRFC] = rfc.NewValidator()
	}
	if enabledChecks["CLABE"] {
		result[document.KindCLABE] = clabe.NewValidator()
	}
	if enabledChecks["VIN"] {
		result[document.KindVIN] = vin.NewValidator()
	}
	if enabledChecks["NSS"] {
		result[document.KindNSS] = nss.NewValidator()
	}
	if enabledChecks["PLACAS"] {
		result[document.KindPlate] = plate.NewValidator()
	}

	return result
}

// flooredValidator enforces a configured minimum confidence on top of an
// inner validator: outcomes below the floor lose their valid flag but keep
// the corrected value and corrections.
type flooredValidator struct {
	inner document.FieldValidator
	floor float64
}

func (f *flooredValidator) Kind() document.FieldKind { return f.inner.Kind() }

func (f *flooredValidator) Validate(raw string) document.Outcome {
	out := f.inner.Validate(raw)
	if out.Valid && out.Confidence < f.floor {
		out.Valid = false
	}
	return out
}

// ApplyConfidenceFloors wraps each validator whose canonical check name
// (CURP, RFC, CLABE, VIN, NSS, PLACAS) has an entry in floors. A zero or
// negative floor is ignored.
func ApplyConfidenceFloors(set map[document.FieldKind]document.FieldValidator, floors map[string]float64) map[document.FieldKind]document.FieldValidator {
	for kind, v := range set {
		if floor, ok := floors[kind.String()]; ok && floor > 0 {
			set[kind] = &flooredValidator{inner: v, floor: floor}
		}
	}
	return set
}

// ParseChecksToRun converts a slice of check names into an enabled-checks
// map. An empty slice or ["all"] enables every check.
func ParseChecksToRun(checks []string) map[string]bool {
	result := map[string]bool{
		"CURP":   false,
		"RFC":    false,
		"CLABE":  false,
		"VIN":    false,
		"NSS":    false,
		"PLACAS": false,
	}

	if len(checks) == 0 || (len(checks) == 1 && strings.EqualFold(checks[0], "all")) {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, check := range checks {
		name := strings.ToUpper(strings.TrimSpace(check))
		if _, exists := result[name]; exists {
			result[name] = true
		}
	}

	return result
}

// ParseConfidenceLevels converts a comma-separated confidence level string
// into a map. "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}
