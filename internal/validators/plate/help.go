// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plate

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the PLACAS check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PLACAS",
		ShortDescription: "Validates Mexican license plate numbers",
		DetailedDescription: `The PLACAS check validates license plate values from circulation cards.
Plate formats vary by state and era, so the check enforces the shared
envelope: six to eight alphanumeric characters once separators are
stripped.`,

		Format: []string{
			"6 to 8 uppercase letters and digits",
			"Hyphens, dots and spaces are treated as separators, not content",
		},

		Corrections: []string{
			"Separator noise removed",
			"Lowercase normalized to uppercase",
		},

		Examples: []string{
			"veridoc --input fields.json --doc-type \"Tarjeta de Circulacion\" --checks PLACAS",
		},
	}
}
