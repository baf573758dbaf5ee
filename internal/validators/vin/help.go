// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package vin

import "veridoc/internal/help"

// GetCheckInfo returns standardized information about the VIN check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "VIN",
		ShortDescription: "Validates the 17-character vehicle identification number",
		DetailedDescription: `The VIN check validates the Número de Identificación Vehicular found on
circulation cards and vehicle invoices. The standard excludes the letters
I, O and Q, so any of those in a scanned VIN is an OCR artifact and is
replaced with the digit it was misread from.`,

		Format: []string{
			"17 characters, uppercase letters and digits",
			"Letters I, O and Q never appear",
		},

		Corrections: []string{
			"I→1, O→0, Q→0 anywhere in the value",
			"Separator noise removed",
		},

		Examples: []string{
			"veridoc --input fields.json --doc-type \"Tarjeta de Circulacion\" --checks VIN",
		},
	}
}
