// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "strings"

// FieldKind identifies the type of an extracted document field. The set is
// closed: every recognized key maps to exactly one kind, and anything else
// is KindOther and passes through unvalidated.
type FieldKind int

const (
	KindOther FieldKind = iota
	KindCURP            // 18-char population-registry ID
	KindRFC             // 12/13-char taxpayer ID
	KindCLABE           // 18-digit bank routing code
	KindVIN             // 17-char vehicle identification number
	KindNSS             // 11-digit social-security number
	KindPlate           // license plate
	KindName            // free-text name, light formatting only
)

// String returns the canonical check name for a field kind.
func (k FieldKind) String() string {
	switch k {
	case KindCURP:
		return "CURP"
	case KindRFC:
		return "RFC"
	case KindCLABE:
		return "CLABE"
	case KindVIN:
		return "VIN"
	case KindNSS:
		return "NSS"
	case KindPlate:
		return "PLACAS"
	case KindName:
		return "NOMBRE"
	default:
		return "OTHER"
	}
}

// KindForField maps an upstream field key to its kind. Keys arrive from the
// OCR/AI extraction stage and are matched case-insensitively.
func KindForField(name string) FieldKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "curp":
		return KindCURP
	case "rfc":
		return KindRFC
	case "clabe":
		return KindCLABE
	case "vin", "niv", "numeroserie":
		return KindVIN
	case "nss":
		return KindNSS
	case "placas", "placa":
		return KindPlate
	case "nombre", "razonsocial":
		return KindName
	default:
		return KindOther
	}
}

// FieldMap is the raw extraction output consumed by the pipeline: field key
// to string value, where unreadable characters are "*" and fully unreadable
// fields are "***". The pipeline never mutates it.
type FieldMap map[string]string

// FullyIllegible reports whether the upstream stage could not read the
// field at all.
func FullyIllegible(value string) bool {
	return value == "***"
}

// PartiallyIllegible reports whether the value contains any unreadable
// glyph. Such values must never be algorithmically corrected.
func PartiallyIllegible(value string) bool {
	return strings.Contains(value, "*")
}

// Outcome is the result of validating a single field. It is created fresh
// on every Validate call and never mutated afterwards.
type Outcome struct {
	Valid       bool     `json:"valid"`
	Original    string   `json:"originalValue"`
	Corrected   string   `json:"corrected"`
	Confidence  float64  `json:"confidence"`
	Corrections []string `json:"corrections,omitempty"`
}

// FieldValidator validates and auto-corrects one kind of document field.
// Implementations are pure: no I/O, no shared state, safe for concurrent
// use from any number of goroutines.
type FieldValidator interface {
	Kind() FieldKind
	Validate(raw string) Outcome
}

// Metadata carries document-level context from the extraction stage into
// the fraud analyzer.
type Metadata struct {
	DocumentType string `json:"documentType"`
	ImageQuality string `json:"imageQuality,omitempty"`
}

// VehicleDocument reports whether the declared document type describes a
// vehicle-class document (registration card, circulation permit, invoice).
func (m Metadata) VehicleDocument() bool {
	t := strings.ToLower(m.DocumentType)
	for _, kw := range []string{"vehic", "tarjeta de circulacion", "tarjeta de circulación", "factura", "placas"} {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// DrivingLicense reports whether the declared document type mentions a
// driving license.
func (m Metadata) DrivingLicense() bool {
	t := strings.ToLower(m.DocumentType)
	return strings.Contains(t, "licencia") || strings.Contains(t, "conducir")
}
