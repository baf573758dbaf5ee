// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package curp validates and auto-corrects the 18-character Mexican
// population-registry identifier (CURP). Layout, 0-indexed:
//
//	[0-3]   name-derived letters
//	[4-9]   birth date as YYMMDD
//	[10]    gender, H or M
//	[11-12] state-of-birth code
//	[13-15] name-derived consonants
//	[16]    disambiguation character (digit for births ≤1999, letter after)
//	[17]    computed verification digit
package curp

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"veridoc/internal/document"
	"veridoc/internal/ocr"
)

// verifierAlphabet is the ordered dictionary the official verification
// digit algorithm indexes into. Ñ occupies its own slot between N and O.
const verifierAlphabet = "0123456789ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

// shape is the structural check applied after all repairs.
var shape = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{2}[A-Z]{3}[A-Z0-9]\d$`)

// stateCodes holds the 33 valid two-letter state codes, including NE for
// people born abroad.
var stateCodes = map[string]bool{
	"AS": true, "BC": true, "BS": true, "CC": true, "CL": true,
	"CM": true, "CS": true, "CH": true, "DF": true, "DG": true,
	"GT": true, "GR": true, "HG": true, "JC": true, "MC": true,
	"MN": true, "MS": true, "NT": true, "NL": true, "OC": true,
	"PL": true, "QT": true, "QR": true, "SP": true, "SL": true,
	"SR": true, "TC": true, "TS": true, "TL": true, "VZ": true,
	"YN": true, "ZS": true, "NE": true,
}

// letterPositions are the slots that must hold letters and therefore get
// alpha-normalized; digitPositions get numeric-normalized.
var (
	letterPositions = []int{0, 1, 2, 3, 11, 12, 13, 14, 15}
	digitPositions  = []int{4, 5, 6, 7, 8, 9}
)

// Validator implements document.FieldValidator for CURP fields.
type Validator struct{}

// NewValidator returns a CURP validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Kind implements document.FieldValidator.
func (v *Validator) Kind() document.FieldKind {
	return document.KindCURP
}

// Validate repairs OCR damage in a raw CURP candidate, recomputes the
// verification digit, and checks the result against the official format.
func (v *Validator) Validate(raw string) document.Outcome {
	if strings.TrimSpace(raw) == "" {
		return document.Outcome{Original: raw}
	}

	out := document.Outcome{Original: raw}
	value := ocr.Normalize(raw, ocr.Alphanumeric)

	// Length repair for off-by-one OCR splits.
	switch len([]rune(value)) {
	case 17:
		value += "0"
		out.Corrections = append(out.Corrections, "length 17: appended trailing character")
	case 19:
		value = string([]rune(value)[:18])
		out.Corrections = append(out.Corrections, "length 19: truncated to 18 characters")
	}

	chars := []rune(value)
	if len(chars) == 18 {
		v.repairPositions(chars, &out)
		v.repairVerifierDigit(chars, &out)
		value = string(chars)
	}

	out.Corrected = value

	stateOK := stateCodes[stateCode(value)]
	shapeOK := shape.MatchString(value)
	out.Valid = shapeOK && stateOK

	confidence := 1.0 - 0.03*float64(len(out.Corrections))
	if !stateOK {
		confidence -= 0.2
	}
	if !shapeOK {
		confidence -= 0.3
	}
	if confidence < 0.3 {
		confidence = 0.3
	}
	out.Confidence = confidence

	return out
}

// repairPositions applies context-aware OCR substitution per slot.
func (v *Validator) repairPositions(chars []rune, out *document.Outcome) {
	for _, i := range letterPositions {
		if fixed := firstRune(ocr.Normalize(string(chars[i]), ocr.Alpha)); fixed != 0 && fixed != chars[i] {
			out.Corrections = append(out.Corrections, fmt.Sprintf("position %d: %q → %q", i, chars[i], fixed))
			chars[i] = fixed
		}
	}
	for _, i := range digitPositions {
		if fixed := firstRune(ocr.Normalize(string(chars[i]), ocr.Numeric)); fixed != 0 && fixed != chars[i] {
			out.Corrections = append(out.Corrections, fmt.Sprintf("position %d: %q → %q", i, chars[i], fixed))
			chars[i] = fixed
		}
	}

	// Gender slot: OCR renders H as 4, A, or a vertical stroke.
	switch chars[10] {
	case '4', 'A', '|', 'I', '1':
		out.Corrections = append(out.Corrections, fmt.Sprintf("gender: %q → 'H'", chars[10]))
		chars[10] = 'H'
	}

	// Disambiguation slot is a digit for births up to 1999 and a letter
	// afterwards, so only push it toward digits when it is not a letter.
	if !unicode.IsLetter(chars[16]) {
		if fixed := firstRune(ocr.Normalize(string(chars[16]), ocr.Numeric)); fixed != 0 && fixed != chars[16] {
			out.Corrections = append(out.Corrections, fmt.Sprintf("position 16: %q → %q", chars[16], fixed))
			chars[16] = fixed
		}
	}
}

// repairVerifierDigit recomputes the 18th character from the first 17 and
// overwrites whatever OCR produced.
func (v *Validator) repairVerifierDigit(chars []rune, out *document.Outcome) {
	digit := VerifierDigit(string(chars[:17]))
	if chars[17] != digit {
		out.Corrections = append(out.Corrections,
			fmt.Sprintf("verification digit: %q → %q", chars[17], digit))
		chars[17] = digit
	}
}

// VerifierDigit computes the official verification digit for the first 17
// characters of a CURP: each character's index in the verifier alphabet is
// weighted by (18 − position), the products are summed, and the digit is
// (10 − sum mod 10) mod 10.
func VerifierDigit(first17 string) rune {
	alphabet := []rune(verifierAlphabet)
	sum := 0
	for i, r := range []rune(first17) {
		idx := 0
		for j, a := range alphabet {
			if a == r {
				idx = j
				break
			}
		}
		sum += idx * (18 - i)
	}
	return rune('0' + (10-sum%10)%10)
}

// stateCode extracts the two-letter state code from an 18-character CURP.
func stateCode(curp string) string {
	chars := []rune(curp)
	if len(chars) != 18 {
		return ""
	}
	return string(chars[11:13])
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
