// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fraud

// Severity grades an individual indicator.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// IndicatorKind identifies which rule produced an indicator.
type IndicatorKind string

const (
	IndicatorPoorImageQuality      IndicatorKind = "poor_image_quality"
	IndicatorIllegibleFields       IndicatorKind = "illegible_fields"
	IndicatorInvalidStateCode      IndicatorKind = "invalid_state_code"
	IndicatorGenderMismatch        IndicatorKind = "gender_mismatch"
	IndicatorFutureBirthDate       IndicatorKind = "future_birth_date"
	IndicatorImpossibleAge         IndicatorKind = "impossible_age"
	IndicatorUnderageLicense       IndicatorKind = "underage_license"
	IndicatorBirthDateMismatch     IndicatorKind = "birth_date_mismatch"
	IndicatorRFCCURPMismatch       IndicatorKind = "rfc_curp_mismatch"
	IndicatorExpiredDocument       IndicatorKind = "expired_document"
	IndicatorDistantExpiry         IndicatorKind = "distant_expiry"
	IndicatorSuspiciousName        IndicatorKind = "suspicious_name"
	IndicatorMalformedVIN          IndicatorKind = "malformed_vin"
	IndicatorImpossibleVehicleYear IndicatorKind = "impossible_vehicle_year"
)

// Indicator is one triggered rule: a pure fact about the document, never
// mutated after creation.
type Indicator struct {
	Kind     IndicatorKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Field    string        `json:"field,omitempty"`
	Message  string        `json:"message"`
	Detail   string        `json:"detail,omitempty"`

	// Delta is the score contribution of this indicator. It stays out of
	// serialized output; reports expose only the folded total.
	Delta int `json:"-"`
}

// RiskLevel is the banded interpretation of the additive risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskLevelFor maps an additive score onto its band.
func riskLevelFor(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 45:
		return RiskHigh
	case score >= 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Report is the full fraud assessment for one document. It is recomputed
// per call and carries no identity of its own.
type Report struct {
	IsAuthentic     bool        `json:"isAuthentic"`
	RiskLevel       RiskLevel   `json:"riskLevel"`
	RiskScore       int         `json:"riskScore"`
	Indicators      []Indicator `json:"indicators"`
	Recommendations []string    `json:"recommendations"`
}
