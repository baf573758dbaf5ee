// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocr repairs common optical-character-recognition confusions in
// extracted field text. Photographed documents routinely swap visually
// similar glyphs (O↔0, I↔1, S↔5); which direction the repair should go
// depends on whether the position is expected to hold digits or letters.
package ocr

import (
	"strings"
	"unicode"
)

// CharContext tells Normalize what character class the caller expects, so
// substitutions only run in the direction that makes sense.
type CharContext int

const (
	// Alphanumeric strips noise and upper-cases but performs no
	// substitution: either character class is acceptable.
	Alphanumeric CharContext = iota
	// Numeric maps letter-like glyphs to the digits they are commonly
	// misread from.
	Numeric
	// Alpha maps digit-like glyphs to letters.
	Alpha
)

// digitFor maps letters the OCR stage commonly produces in place of digits.
var digitFor = map[rune]rune{
	'O': '0', 'o': '0', 'Q': '0', 'D': '0',
	'I': '1', 'i': '1', 'l': '1', 'L': '1', '|': '1', '!': '1',
	'Z': '2', 'z': '2',
	'S': '5', 's': '5', '$': '5',
	'G': '6', 'b': '6',
	'B': '8',
	'g': '9', 'q': '9',
}

// letterFor maps digits commonly produced in place of letters.
var letterFor = map[rune]rune{
	'0': 'O',
	'1': 'I',
	'2': 'Z',
	'5': 'S',
	'6': 'G',
	'8': 'B',
	'9': 'G',
}

// noise is the set of separator and punctuation characters the OCR stage
// injects around identifier fields.
const noise = "-_.,:;'\""

// Normalize upper-cases the input, strips whitespace and noise characters,
// and applies the substitution table for the given context. It is pure and
// deterministic; empty input comes back unchanged.
func Normalize(input string, ctx CharContext) string {
	if input == "" {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		if unicode.IsSpace(r) || strings.ContainsRune(noise, r) {
			continue
		}
		switch ctx {
		case Numeric:
			if d, ok := digitFor[r]; ok {
				r = d
			}
		case Alpha:
			if l, ok := letterFor[r]; ok {
				r = l
			}
		}
		b.WriteRune(r)
	}

	return strings.ToUpper(b.String())
}
