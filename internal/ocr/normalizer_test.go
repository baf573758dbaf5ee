// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ocr

import "testing"

func TestNormalize_Numeric(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"letter-like glyphs become digits", "O1Z345", "012345"},
		{"lowercase confusions", "olzsb", "01256"},
		{"dollar and pipe", "$|", "51"},
		{"case-sensitive pairs", "gGbB", "9668"},
		{"noise stripped", " 12-34.56 ", "123456"},
		{"tabs and newlines stripped", "123\t45\n6", "123456"},
		{"already clean", "123456", "123456"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input, Numeric); got != tc.want {
				t.Errorf("Normalize(%q, Numeric) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Alpha(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"digit-like glyphs become letters", "0125", "OIZS"},
		{"six eight nine", "689", "GBG"},
		{"lower-cases preserved as upper", "peg0", "PEGO"},
		{"noise stripped", "a-b_c", "ABC"},
		{"embedded whitespace stripped", "ABC\nDEF\tG", "ABCDEFG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input, Alpha); got != tc.want {
				t.Errorf("Normalize(%q, Alpha) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Alphanumeric(t *testing.T) {
	// No substitution beyond trimming, noise removal and upper-casing.
	if got := Normalize(" o1 i-l ", Alphanumeric); got != "O1IL" {
		t.Errorf("got %q, want O1IL", got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize("", Numeric); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	input := "oQ-D1|!zS$Gb B8gq"
	first := Normalize(input, Numeric)
	for i := 0; i < 10; i++ {
		if got := Normalize(input, Numeric); got != first {
			t.Fatalf("call %d produced %q, first call produced %q", i, got, first)
		}
	}
}
