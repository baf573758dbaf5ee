// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package vin validates 17-character vehicle identification numbers.
// ISO 3779 excludes the letters I, O and Q from the VIN alphabet, so any
// occurrence is an OCR misread of the digit it resembles.
package vin

import (
	"fmt"
	"regexp"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

var shape = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// forbidden maps the excluded letters to the digits they are misread from.
var forbidden = map[rune]rune{'I': '1', 'O': '0', 'Q': '0'}

// Validator implements document.FieldValidator for VIN fields.
type Validator struct{}

// NewValidator returns a VIN validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindVIN
}

// Validate coerces forbidden letters to their digit counterparts and checks
// the VIN shape.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}
	value := ocr.Normalize(raw, ocr.Alphanumeric)

	chars := []rune(value)
	for i, r := range chars {
		if d, ok := forbidden[r]; ok {
			out.Corrections = append(out.Corrections, fmt.Sprintf("position %d: %q → %q", i, r, d))
			chars[i] = d
		}
	}
	value = string(chars)
	out.Corrected = value

	out.Valid = shape.MatchString(value)
	if out.Valid {
		out.Confidence = 0.9
	} else {
		out.Confidence = 0.4
	}

	return out
}
