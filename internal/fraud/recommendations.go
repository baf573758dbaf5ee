// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fraud

// bandRecommendations are appended once per risk level.
var bandRecommendations = map[RiskLevel]string{
	RiskLow:      "Document is consistent; proceed with standard processing.",
	RiskMedium:   "Manually review the flagged fields before accepting the document.",
	RiskHigh:     "Request a second identity document before accepting this one.",
	RiskCritical: "Reject the document and escalate to a fraud review specialist.",
}

// kindRecommendations are appended once per triggered rule category.
var kindRecommendations = map[IndicatorKind]string{
	IndicatorPoorImageQuality:      "Request a new capture with better lighting and focus.",
	IndicatorIllegibleFields:       "Request a clearer photograph; too many fields were unreadable.",
	IndicatorInvalidStateCode:      "Verify the CURP against the national population registry.",
	IndicatorGenderMismatch:        "Cross-check the holder identity against an official registry.",
	IndicatorFutureBirthDate:       "Verify the CURP against the national population registry.",
	IndicatorImpossibleAge:         "Verify the CURP against the national population registry.",
	IndicatorUnderageLicense:       "Confirm the holder meets the minimum age for this document type.",
	IndicatorBirthDateMismatch:     "Cross-check the holder identity against an official registry.",
	IndicatorRFCCURPMismatch:       "Verify the RFC with the tax authority before accepting it.",
	IndicatorExpiredDocument:       "Request an updated document.",
	IndicatorDistantExpiry:         "Confirm the expiry date directly on the physical document.",
	IndicatorSuspiciousName:        "Confirm the holder name against a second document.",
	IndicatorMalformedVIN:          "Verify the VIN against the vehicle registry.",
	IndicatorImpossibleVehicleYear: "Verify the model year against the vehicle invoice.",
}

// recommendationsFor builds the fixed recommendation list: one line for the
// risk band plus one per distinct triggered category, in indicator order.
func recommendationsFor(level RiskLevel, indicators []Indicator) []string {
	recs := []string{bandRecommendations[level]}

	seen := map[IndicatorKind]bool{}
	for _, ind := range indicators {
		if seen[ind.Kind] {
			continue
		}
		seen[ind.Kind] = true
		if r, ok := kindRecommendations[ind.Kind]; ok {
			recs = append(recs, r)
		}
	}
	return recs
}
