// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rfc validates the Mexican taxpayer identifier (RFC): 13
// characters for individuals (4 name letters) and 12 for organizations
// (3 letters), followed in both cases by a YYMMDD date and a 3-character
// homoclave.
package rfc

import (
	"fmt"
	"regexp"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

var (
	shapePersona = regexp.MustCompile(`^[A-Z]{4}\d{6}[A-Z0-9]{3}$`)
	shapeMoral   = regexp.MustCompile(`^[A-Z]{3}\d{6}[A-Z0-9]{3}$`)
)

// Validator implements document.FieldValidator for RFC fields.
type Validator struct{}

// NewValidator returns an RFC validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindRFC
}

// Validate repairs OCR damage in a raw RFC candidate and checks it against
// the individual and organization shapes.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}
	value := ocr.Normalize(raw, ocr.Alphanumeric)

	switch len([]rune(value)) {
	case 11:
		value += "0"
		out.Corrections = append(out.Corrections, "length 11: appended trailing character")
	case 14:
		value = string([]rune(value)[:13])
		out.Corrections = append(out.Corrections, "length 14: truncated to 13 characters")
	}

	chars := []rune(value)

	// Individuals carry 4 leading letters, organizations 3; the 6
	// characters after the letters are the incorporation/birth date.
	letters := 3
	if len(chars) == 13 {
		letters = 4
	}
	if len(chars) >= letters+6 {
		for i := 0; i < letters; i++ {
			if fixed := firstRune(ocr.Normalize(string(chars[i]), ocr.Alpha)); fixed != 0 && fixed != chars[i] {
				out.Corrections = append(out.Corrections, fmt.Sprintf("position %d: %q → %q", i, chars[i], fixed))
				chars[i] = fixed
			}
		}
		for i := letters; i < letters+6; i++ {
			if fixed := firstRune(ocr.Normalize(string(chars[i]), ocr.Numeric)); fixed != 0 && fixed != chars[i] {
				out.Corrections = append(out.Corrections, fmt.Sprintf("position %d: %q → %q", i, chars[i], fixed))
				chars[i] = fixed
			}
		}
	}
	value = string(chars)
	out.Corrected = value

	out.Valid = shapePersona.MatchString(value) || shapeMoral.MatchString(value)

	if !out.Valid {
		out.Confidence = 0.4
		return out
	}
	confidence := 1.0 - 0.05*float64(len(out.Corrections))
	if confidence < 0.7 {
		confidence = 0.7
	}
	out.Confidence = confidence

	return out
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
