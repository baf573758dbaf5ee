// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plate validates Mexican license plates. Plates carry no checksum;
// validation is purely structural, two blocks of 3-4 alphanumerics.
package plate

import (
	"regexp"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

var shape = regexp.MustCompile(`^[A-Z0-9]{3,4}[A-Z0-9]{3,4}$`)

// Validator implements document.FieldValidator for license plate fields.
type Validator struct{}

// NewValidator returns a plate validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindPlate
}

// Validate strips separators and checks the plate shape and length band.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}
	value := ocr.Normalize(raw, ocr.Alphanumeric)
	out.Corrected = value

	n := len([]rune(value))
	if n < 6 || n > 8 {
		out.Confidence = 0.3
		return out
	}

	out.Valid = shape.MatchString(value)
	if out.Valid {
		out.Confidence = 0.85
	} else {
		out.Confidence = 0.5
	}

	return out
}
