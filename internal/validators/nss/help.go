// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package nss

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the NSS check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "NSS",
		ShortDescription: "Validates the 11-digit IMSS social security number",
		DetailedDescription: `The NSS check validates the Número de Seguridad Social issued by the
IMSS. The value is eleven digits; the last one is a Luhn-style check
digit computed over the first ten.`,

		Format: []string{
			"2 digits (subdelegation)",
			"2 digits (registration year)",
			"2 digits (birth year)",
			"4 digits (serial)",
			"1 digit (check)",
		},

		Corrections: []string{
			"Letter-for-digit confusions repaired (O→0, I→1, S→5, B→8)",
			"Check digit recomputed when it disagrees",
			"Length repairs: 10 digits gain a leading zero, 12 lose the last digit",
		},

		ChecksumInfo: "Luhn variant: digits at even positions of the first ten are doubled (minus 9 when above 9), summed with the rest; check digit = (10 - sum mod 10) mod 10.",

		Examples: []string{
			"veridoc --input fields.json --checks NSS",
		},
	}
}
