// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package nss

import (
	"strings"
	"testing"
)

func TestValidate_Clean(t *testing.T) {
	v := NewValidator()
	out := v.Validate("01234567893")
	if !out.Valid {
		t.Fatalf("expected valid NSS, corrections: %v", out.Corrections)
	}
	if out.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", out.Confidence)
	}
}

func TestValidate_CheckDigitOverwrite(t *testing.T) {
	v := NewValidator()
	out := v.Validate("01234567890")
	if out.Corrected != "01234567893" {
		t.Fatalf("expected check digit rewritten to 3, got %q", out.Corrected)
	}
	var logged bool
	for _, c := range out.Corrections {
		if strings.Contains(c, "check digit") {
			logged = true
		}
	}
	if !logged {
		t.Errorf("expected a check-digit correction entry, got %v", out.Corrections)
	}
	if want := 1.0 - 0.1; out.Confidence != want {
		t.Errorf("expected confidence %v, got %v", want, out.Confidence)
	}
}

func TestValidate_TenDigitsLeftPadded(t *testing.T) {
	v := NewValidator()
	out := v.Validate("1234567893")
	if len(out.Corrected) != 11 {
		t.Fatalf("expected 11 digits after padding, got %q", out.Corrected)
	}
	if !strings.HasPrefix(out.Corrected, "0") {
		t.Errorf("expected leading zero pad, got %q", out.Corrected)
	}
	if !out.Valid {
		t.Error("padded NSS should be valid after checksum repair")
	}
}

func TestValidate_TwelveDigitsTruncated(t *testing.T) {
	v := NewValidator()
	out := v.Validate("012345678939")
	if out.Corrected != "01234567893" {
		t.Errorf("expected truncation to 01234567893, got %q", out.Corrected)
	}
}

func TestValidate_UnrepairableLength(t *testing.T) {
	v := NewValidator()
	for _, input := range []string{"123", "123456789", "1234567890123"} {
		out := v.Validate(input)
		if out.Valid {
			t.Errorf("%q should not validate", input)
		}
		if out.Confidence != 0.3 {
			t.Errorf("%q: expected confidence 0.3, got %v", input, out.Confidence)
		}
		var lengthLogged bool
		for _, c := range out.Corrections {
			if strings.Contains(c, "invalid length") {
				lengthLogged = true
			}
		}
		if !lengthLogged {
			t.Errorf("%q: expected an invalid-length entry, got %v", input, out.Corrections)
		}
	}
}

func TestValidate_OCRGlyphs(t *testing.T) {
	v := NewValidator()
	out := v.Validate("O12345678g3")
	if out.Corrected != "01234567893" {
		t.Fatalf("expected 01234567893, got %q", out.Corrected)
	}
	if !out.Valid {
		t.Error("repaired NSS should be valid")
	}
}

func TestValidate_Empty(t *testing.T) {
	v := NewValidator()
	out := v.Validate("")
	if out.Valid || out.Confidence != 0 {
		t.Errorf("empty input should yield a zero outcome, got %+v", out)
	}
}

func TestCheckDigit(t *testing.T) {
	cases := []struct {
		first10 string
		want    rune
	}{
		{"0123456789", '3'},
		{"1234567890", '7'},
		{"0000000000", '0'},
	}
	for _, tc := range cases {
		if got := checkDigit(tc.first10); got != tc.want {
			t.Errorf("checkDigit(%q) = %q, want %q", tc.first10, got, tc.want)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	v := NewValidator()
	first := v.Validate("O12345678g3")
	second := v.Validate(first.Corrected)
	if second.Corrected != first.Corrected {
		t.Errorf("re-validating a corrected value changed it: %q → %q",
			first.Corrected, second.Corrected)
	}
	if len(second.Corrections) != 0 {
		t.Errorf("re-validation should log no corrections, got %v", second.Corrections)
	}
}
