// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rfc

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the RFC check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "RFC",
		ShortDescription: "Validates the 12- or 13-character RFC tax identifier",
		DetailedDescription: `The RFC check validates the Registro Federal de Contribuyentes, the tax
identifier issued by the SAT. Natural persons carry 13 characters, legal
entities 12.

It repairs OCR confusions per position (the birth-date block must be
digits, the name block letters) and accepts the trailing homoclave as
either letters or digits.`,

		Format: []string{
			"Natural person: 4 letters + 6 digits (date) + 3 alphanumeric",
			"Legal entity: 3 letters + 6 digits (date) + 3 alphanumeric",
		},

		Corrections: []string{
			"O→0, I→1, S→5 and similar in the date block",
			"0→O, 1→I, 5→S and similar in the name block",
			"Length repairs: 11 characters gain a trailing digit, 14 lose one",
		},

		Examples: []string{
			"veridoc --input fields.json --checks RFC",
		},
	}
}
