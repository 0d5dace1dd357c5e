// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statistics

import (
	"math"
	"strconv"
	"strings"
)

// powerSeparators are the spellings of "times ten to the" accepted in
// scientific notation, after whitespace has been removed.
var powerSeparators = []string{"×10^", "x10^", "*10^", "×10", "x10", "*10"}

// parseNumber parses a matched number, accepting decimal, leading-dot
// (".05"), e-notation, "a × 10^-b" forms with ASCII or unicode minus, and a
// bare "10^-b" or "10−b" with an implied mantissa of 1. A trailing sentence
// period is ignored. Anything else is malformed.
func parseNumber(raw string) (float64, bool) {
	s := strings.Join(strings.Fields(raw), "")
	s = strings.TrimRight(s, ".")
	if rest, ok := strings.CutPrefix(s, "10−"); ok {
		s = "10^−" + rest
	}
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.ToLower(s)
	if s == "" {
		return 0, false
	}
	if rest, ok := strings.CutPrefix(s, "10^"); ok {
		s = "1e" + rest
	}

	for _, sep := range powerSeparators {
		i := strings.Index(s, sep)
		if i <= 0 {
			continue
		}
		mant, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, false
		}
		exp, err := strconv.Atoi(s[i+len(sep):])
		if err != nil {
			return 0, false
		}
		return finite(mant * math.Pow10(exp))
	}

	// Only digits, dots, and an exponent may reach ParseFloat; it would
	// otherwise accept "inf" or hex floats.
	if strings.ContainsFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == 'e' || r == '-' || r == '+')
	}) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(v)
}

// parseCount parses an integer count with optional thousands separators.
func parseCount(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
