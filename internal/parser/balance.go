package parser

import "regexp"

// Balance label families. Each family has a comma-grouped variant tried
// before a plain-digit variant, so "18,420.50" and "18420.50" both resolve
// under the same label. First match across the six patterns wins.
var balancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Balance after transaction:\s*₹?\s*(\d{1,3}(?:,\d{3})+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Balance after transaction:\s*₹?\s*(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Available Balance\s*→\s*₹\s*(\d{1,3}(?:,\d{3})+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Available Balance\s*→\s*₹\s*(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)\bBal\s+(\d{1,3}(?:,\d{3})+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)\bBal\s+(\d+(?:\.\d{2})?)`),
}

// extractBalance returns the post-transaction balance, or nil when no
// balance clause is present. Absent is not zero: a caller storing the result
// keeps the distinction.
func extractBalance(text string) *float64 {
	for _, p := range balancePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			v := parseNumber(m[1])
			return &v
		}
	}
	return nil
}
