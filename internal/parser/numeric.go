package parser

import (
	"strconv"
	"strings"
)

// parseNumber converts strings like "1,234.56", "-420.00" or "₹2,999.00" to
// a float64. Thousands separators, currency signs and stray whitespace are
// stripped before the numeric parse; anything unparsable collapses to 0.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, " ", "") // non-breaking space
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" || s == "-" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
