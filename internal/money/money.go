// Package money holds the fixed-point helpers shared by the tax engine,
// the ingestion pipeline and the report exporters. All monetary values in
// the system are shopspring decimals; float64 never carries an amount.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of minor-unit digits for INR.
const Places = 2

// Round2 rounds half-up to two minor-unit places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Half splits d evenly, as for the CGST/SGST intra-state split.
func Half(d decimal.Decimal) decimal.Decimal {
	return d.Div(decimal.NewFromInt(2))
}

// Percent returns d * rate/100.
func Percent(d, rate decimal.Decimal) decimal.Decimal {
	return d.Mul(rate).Div(decimal.NewFromInt(100))
}

// Format renders an amount with a stable two-decimal precision for
// export payloads.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// ParseLoose parses a user- or OCR-supplied amount, returning zero on
// failure. Currency markers, thousands separators and blanks are
// stripped first; unparseable values degrade to 0 rather than aborting
// the caller.
func ParseLoose(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"₹", "Rs.", "Rs", "INR"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
