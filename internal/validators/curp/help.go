// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package curp

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the CURP check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "CURP",
		ShortDescription: "Validates and corrects the 18-character CURP population registry code",
		DetailedDescription: `The CURP check validates the Clave Única de Registro de Población, the
18-character code identifying every person registered in Mexico.

It repairs common OCR confusions position by position (letters in digit
positions and digits in letter positions), coerces the gender character,
verifies the state code against the official two-letter registry, and
recomputes the verification digit over the first 17 characters.`,

		Format: []string{
			"4 letters (name-derived)",
			"6 digits (birth date YYMMDD)",
			"H or M (gender)",
			"2 letters (state code)",
			"3 letters (internal consonants)",
			"1 character (homonymy differentiator)",
			"1 digit (verification)",
		},

		Corrections: []string{
			"O→0, I→1, S→5 and similar in the date positions",
			"0→O, 1→I, 5→S and similar in the letter positions",
			"Gender position coerced to H when read as 4, A, | or 1",
			"Verification digit recomputed when it disagrees",
			"Length repairs: 17 characters gain a trailing digit, 19 lose one",
		},

		ChecksumInfo: "Weighted sum over the first 17 characters against the alphabet 0-9, A-Z with Ñ; digit = (10 - sum mod 10) mod 10.",

		Examples: []string{
			"veridoc --input fields.json --checks CURP",
			"veridoc --input fields.json --checks CURP --verbose",
		},
	}
}
