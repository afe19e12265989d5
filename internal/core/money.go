// Package core provides money parsing and rounding utilities.
//
// Amounts are stored as REAL columns but every sum and rounding step goes
// through decimal arithmetic so that totals shown to the user are stable.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum returns the unrounded sum of quantity × unit_price over expenses.
func Sum(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount())
	}
	return total
}

// ParseAmount parses an optional numeric form field.
//
// It accepts both dot (1.5) and comma (1,5) decimal separators. An empty value
// returns present=false and no error. Negative values are returned as-is so the
// caller can report them as a validation failure rather than a parse failure.
func ParseAmount(s string) (value float64, present bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, ErrInvalidNumber
	}
	return v, true, nil
}

// FormatPlain renders f as a plain decimal that always carries a fractional
// part, e.g. 2 -> "2.0", 1.25 -> "1.25".
func FormatPlain(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatDecimal renders d like FormatPlain.
func FormatDecimal(d decimal.Decimal) string {
	return FormatPlain(d.InexactFloat64())
}
