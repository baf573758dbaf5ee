// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fraud

import (
	"fmt"
	"strconv"
	"time"
)

// curpStateCodes mirrors the validator's 33-entry table; the analyzer keeps
// its own copy because it flags the inconsistency rather than correcting it.
var curpStateCodes = map[string]bool{
	"AS": true, "BC": true, "BS": true, "CC": true, "CL": true,
	"CM": true, "CS": true, "CH": true, "DF": true, "DG": true,
	"GT": true, "GR": true, "HG": true, "JC": true, "MC": true,
	"MN": true, "MS": true, "NT": true, "NL": true, "OC": true,
	"PL": true, "QT": true, "QR": true, "SP": true, "SL": true,
	"SR": true, "TC": true, "TS": true, "TL": true, "VZ": true,
	"YN": true, "ZS": true, "NE": true,
}

// BirthDateFromCURP reads positions 4-9 of an 18-character CURP as YYMMDD.
// The century pivots at 30: YY ≤ 30 resolves to 2000+YY, otherwise 1900+YY.
// Dates the calendar would silently normalize (day 31 in a 30-day month,
// Feb 30) are rejected.
func BirthDateFromCURP(curp string) (time.Time, error) {
	chars := []rune(curp)
	if len(chars) != 18 {
		return time.Time{}, fmt.Errorf("curp length %d, want 18", len(chars))
	}

	yy, err1 := strconv.Atoi(string(chars[4:6]))
	mm, err2 := strconv.Atoi(string(chars[6:8]))
	dd, err3 := strconv.Atoi(string(chars[8:10]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("non-numeric date in curp %q", string(chars[4:10]))
	}

	year := 1900 + yy
	if yy <= 30 {
		year = 2000 + yy
	}

	d := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(mm) || d.Day() != dd {
		return time.Time{}, fmt.Errorf("impossible calendar date %02d-%02d-%02d", yy, mm, dd)
	}

	return d, nil
}

// GenderFromCURP reads position 10: H for male, M for female.
func GenderFromCURP(curp string) string {
	chars := []rune(curp)
	if len(chars) != 18 {
		return ""
	}
	switch chars[10] {
	case 'H', 'M':
		return string(chars[10])
	}
	return ""
}

// StateCodeFromCURP reads positions 11-12.
func StateCodeFromCURP(curp string) string {
	chars := []rune(curp)
	if len(chars) != 18 {
		return ""
	}
	return string(chars[11:13])
}

// ageAt computes full years elapsed between birth and a reference instant.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}
	return years
}
