package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/smartparse/internal/models"
)

// Amount patterns, tried in priority order. The captured value keeps its
// sign: a negative raw amount feeds debit inference, while the stored amount
// is always the magnitude.
var (
	// "Amount: -420.00" / "Amount: 1,250.00"
	amountLabelPattern = regexp.MustCompile(`(?i)Amount:\s*(-?\d[\d,]*(?:\.\d{2})?)`)
	// "₹1,250.00"
	amountRupeePattern = regexp.MustCompile(`₹\s*(-?\d[\d,]*(?:\.\d{2})?)`)
	// "2,999.00 Dr" / "500 debited"; the marker implies a negative amount
	amountDebitPattern = regexp.MustCompile(`(?i)(-?\d[\d,]*(?:\.\d{2})?)\s*(?:debited|Dr)\b`)
	// last resort: the first standalone number-like token anywhere
	amountBarePattern = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d{2})?\b`)
)

// extractAmount returns the signed raw amount found in the text, or 0 when
// nothing number-like matches. The bare-token fallback is the least reliable
// branch and may capture order numbers or date fragments; callers see that
// reflected in the confidence score, not as an error.
func extractAmount(text string) float64 {
	if m := amountLabelPattern.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1])
	}

	if m := amountRupeePattern.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1])
	}

	if m := amountDebitPattern.FindStringSubmatch(text); m != nil {
		v := parseNumber(m[1])
		if v > 0 {
			v = -v
		}
		return v
	}

	if m := amountBarePattern.FindString(text); m != "" {
		return parseNumber(m)
	}

	return 0
}

// Standalone direction tokens, bounded by whitespace or line edges so "Dr"
// in "Drive" or "cr" in "across" never match.
var (
	drTokenPattern = regexp.MustCompile(`(?:^|\s)dr(?:\s|$)`)
	crTokenPattern = regexp.MustCompile(`(?:^|\s)cr(?:\s|$)`)
)

// resolveType decides DEBIT vs CREDIT from the lower-cased text and the
// signed raw amount. Explicit keywords win, then a negative raw amount
// implies a debit. Unmarked positives default to debit: a credit must be
// explicitly signalled.
func resolveType(lowered string, rawAmount float64) models.TransactionType {
	if strings.Contains(lowered, "debited") || drTokenPattern.MatchString(lowered) {
		return models.TypeDebit
	}
	if strings.Contains(lowered, "credited") || crTokenPattern.MatchString(lowered) {
		return models.TypeCredit
	}
	if rawAmount < 0 {
		return models.TypeDebit
	}
	// No positive-implies-credit rule.
	return models.TypeDebit
}
