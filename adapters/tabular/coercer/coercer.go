// Package coercer handles deterministic type coercion of raw cell strings.
// Rules are fixed so that re-reading the same file always yields the same
// typed values.
package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"marketlens/domain/core"
	"marketlens/domain/table"
)

var currencyMarkers = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}

// dateFormats are tried in order; all are truncated to calendar-day
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseNumeric attempts to parse a raw cell as a number. It tolerates
// currency markers, percent signs, thousands separators, and parenthesised
// negatives: "(1,234.50)" -> -1234.5.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}

	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// CoerceNumeric converts a raw cell to a numeric value, missing when the
// cell is empty or unparseable.
func CoerceNumeric(raw string) table.Value {
	if v, ok := ParseNumeric(raw); ok {
		return table.Numeric(v)
	}
	return table.Missing()
}

// ParseDate attempts to parse a raw cell as a calendar date, discarding
// any time-of-day component.
func ParseDate(raw string) (core.Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.Date{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return core.NewDate(t), true
		}
	}
	return core.Date{}, false
}

// CoerceDate converts a raw cell to a date value, missing when unparseable
func CoerceDate(raw string) table.Value {
	if d, ok := ParseDate(raw); ok {
		return table.DateValue(d)
	}
	return table.Missing()
}
