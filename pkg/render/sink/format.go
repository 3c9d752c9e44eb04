package sink

import "strconv"

const defaultPrecision = 3

// formatCoord formats v with at most prec decimals, trimming trailing zeros.
func formatCoord(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if prec <= 0 {
		return s
	}
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
