// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package clabe validates the 18-digit standardized Mexican bank routing
// code (CLABE). The first 17 digits carry a repeating 3-7-1 weighted
// checksum whose per-term products are reduced mod 10 before summing.
package clabe

import (
	"fmt"
	"strings"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

var weights = [17]int{3, 7, 1, 3, 7, 1, 3, 7, 1, 3, 7, 1, 3, 7, 1, 3, 7}

// Validator implements document.FieldValidator for CLABE fields.
type Validator struct{}

// NewValidator returns a CLABE validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindCLABE
}

// Validate strips a raw CLABE candidate down to digits, repairs off-by-one
// lengths, and verifies the check digit.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}

	// Everything in a CLABE is numeric, so normalize the whole value in
	// digit context and drop any leftover non-digit.
	normalized := ocr.Normalize(raw, ocr.Numeric)
	var digits strings.Builder
	for _, r := range normalized {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	value := digits.String()
	if value != strings.ToUpper(strings.TrimSpace(raw)) {
		out.Corrections = append(out.Corrections, fmt.Sprintf("%q → %q", raw, value))
	}

	switch len(value) {
	case 17:
		value = "0" + value
		out.Corrections = append(out.Corrections, "length 17: prepended leading zero")
	case 19:
		value = value[:18]
		out.Corrections = append(out.Corrections, "length 19: truncated to 18 digits")
	}
	out.Corrected = value

	if len(value) == 18 && checkDigit(value[:17]) == rune(value[17]) {
		out.Valid = true
		out.Confidence = 0.95
	} else {
		out.Confidence = 0.6
	}

	return out
}

// checkDigit computes the expected 18th digit for the first 17: each digit
// is multiplied by its 3-7-1 weight, the product is reduced mod 10, the
// reduced terms are summed, and the digit is (10 − sum mod 10) mod 10.
func checkDigit(first17 string) rune {
	sum := 0
	for i := 0; i < len(first17) && i < 17; i++ {
		d := int(first17[i] - '0')
		sum += (d * weights[i]) % 10
	}
	return rune('0' + (10-sum%10)%10)
}
