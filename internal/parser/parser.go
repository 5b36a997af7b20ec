package parser

import (
	"math"
	"strings"
	"time"

	"github.com/insightdelivered/smartparse/internal/models"
)

// Confidence weights per extracted field. They sum to 100, but the all-valid
// case is awarded as an explicit 100 rather than through the sum so that a
// future weight change cannot break the guarantee.
const (
	weightDate        = 30
	weightAmount      = 30
	weightDescription = 25
	weightBalance     = 15
)

// TransactionParser extracts a structured transaction from one free-text
// alert (bank statement line, SMS debit/credit alert, terse transaction log).
// It is stateless and safe for concurrent use from any number of goroutines.
//
// Now is only consulted when the text carries no recognisable date; leave it
// nil outside tests to get time.Now.
type TransactionParser struct {
	Now func() time.Time
}

// Parse never fails: malformed or empty input degrades to defaults (current
// date, zero amount, "Transaction" description, absent balance) and the
// confidence score reports how much was actually extracted. Each field
// extractor re-scans the text with its own patterns, since the supported
// dialects interleave fields in arbitrary order.
func (p *TransactionParser) Parse(text string) models.ParsedTransaction {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	text = strings.TrimSpace(text)
	lowered := strings.ToLower(text)

	date, dateMatched := extractDate(text, now)
	raw := extractAmount(text)
	amount := math.Abs(raw)
	desc := extractDescription(text)
	balance := extractBalance(text)

	return models.ParsedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        resolveType(lowered, raw),
		Balance:     balance,
		Confidence: scoreConfidence(
			dateMatched && !date.IsZero(),
			amount > 0,
			len(desc) > 3 && desc != fallbackDescription,
			balance != nil && *balance > 0,
		),
	}
}

// scoreConfidence turns the four field-validity predicates into a 0-100
// completeness score. This is a rule-based heuristic, not a probability.
func scoreConfidence(dateOK, amountOK, descOK, balanceOK bool) int {
	if dateOK && amountOK && descOK && balanceOK {
		return 100
	}

	score := 0
	if dateOK {
		score += weightDate
	}
	if amountOK {
		score += weightAmount
	}
	if descOK {
		score += weightDescription
	}
	if balanceOK {
		score += weightBalance
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
