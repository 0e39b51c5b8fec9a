package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount converts a source amount string to a signed float rounded to
// two decimals. Both decimal-comma ("1.234,56", "-54,97") and decimal-point
// ("1,234.56", "-45.50") inputs are accepted: whichever separator appears
// last is the decimal separator, the other is a thousands separator. Belgian
// bank exports use the comma form.
func parseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == ',':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("parse amount %q: no numeric content", s)
	}
	lastComma := strings.LastIndex(cleaned, ",")
	lastPoint := strings.LastIndex(cleaned, ".")
	if lastComma >= 0 {
		if lastComma > lastPoint {
			// comma is the decimal separator, points are thousands
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// point is the decimal separator, commas are thousands
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.Round(2).InexactFloat64(), nil
}

// round2 rounds a computed monetary value to two decimals, keeping
// aggregate sums free of float drift.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
