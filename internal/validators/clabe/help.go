// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package clabe

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the CLABE check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "CLABE",
		ShortDescription: "Validates the 18-digit CLABE interbank account number",
		DetailedDescription: `The CLABE check validates the Clave Bancaria Estandarizada used for
interbank transfers. Every character must be a digit, and the final digit
is a weighted checksum of the first seventeen.`,

		Format: []string{
			"3 digits (bank)",
			"3 digits (branch plaza)",
			"11 digits (account)",
			"1 digit (control)",
		},

		Corrections: []string{
			"O→0, I→1, S→5, B→8 and similar letter-for-digit confusions",
			"Separator noise removed (spaces, hyphens, dots)",
			"Length repairs: 17 digits gain a leading zero, 19 lose the last digit",
		},

		ChecksumInfo: "Weights 3,7,1 repeating; each product reduced mod 10 before summing; control digit = (10 - sum mod 10) mod 10.",

		Examples: []string{
			"veridoc --input fields.json --checks CLABE",
		},
	}
}
