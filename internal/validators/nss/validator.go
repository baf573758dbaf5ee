// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package nss validates the 11-digit Mexican social-security number. The
// last digit is a Luhn-style checksum over the first ten and is always
// recomputed; values whose length cannot be repaired to 11 are rejected
// without touching the checksum.
package nss

import (
	"fmt"
	"regexp"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

var shape = regexp.MustCompile(`^\d{11}$`)

// Validator implements document.FieldValidator for NSS fields.
type Validator struct{}

// NewValidator returns an NSS validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindNSS
}

// Validate repairs off-by-one lengths, recomputes the check digit, and
// verifies the all-digit shape.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}
	value := ocr.Normalize(raw, ocr.Numeric)
	if value != strings.TrimSpace(raw) {
		out.Corrections = append(out.Corrections, fmt.Sprintf("%q → %q", raw, value))
	}

	switch len(value) {
	case 10:
		value = "0" + value
		out.Corrections = append(out.Corrections, "length 10: prepended leading zero")
	case 12:
		value = value[:11]
		out.Corrections = append(out.Corrections, "length 12: truncated to 11 digits")
	case 11:
		// already in band
	default:
		out.Corrected = value
		out.Corrections = append(out.Corrections, fmt.Sprintf("invalid length %d", len(value)))
		out.Confidence = 0.3
		return out
	}

	if shape.MatchString(value[:10] + "0") {
		expected := checkDigit(value[:10])
		if rune(value[10]) != expected {
			out.Corrections = append(out.Corrections,
				fmt.Sprintf("check digit: %q → %q", value[10], expected))
			value = value[:10] + string(expected)
		}
	}
	out.Corrected = value

	out.Valid = shape.MatchString(value)
	if !out.Valid {
		out.Confidence = 0.4
		return out
	}
	confidence := 1.0 - 0.1*float64(len(out.Corrections))
	if confidence < 0.7 {
		confidence = 0.7
	}
	out.Confidence = confidence

	return out
}

// checkDigit computes the Luhn-variant check digit for the first ten
// digits: digits at even indexes are doubled, doubles above 9 drop 9, and
// the digit is (10 − sum mod 10) mod 10.
func checkDigit(first10 string) rune {
	sum := 0
	for i := 0; i < len(first10) && i < 10; i++ {
		d := int(first10[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return rune('0' + (10-sum%10)%10)
}
