package parser

import (
	"regexp"
	"strings"
)

// fallbackDescription is substituted when stripping leaves nothing behind.
const fallbackDescription = "Transaction"

// Strip patterns applied in order before the leftover text is taken as the
// description. The order matters: numeric forms (amounts, then balances) go
// first so their labels and fragments never survive into the description or
// make empty text look populated. The amount and balance strips tolerate a
// missing number so a label whose value was consumed by an earlier strip is
// still removed.
var descriptionStrips = []*regexp.Regexp{
	// transaction ids: "txn123", "TXN8842a"
	regexp.MustCompile(`(?i)txn\w+`),
	// order numbers: "#403-1234567-8901234"
	regexp.MustCompile(`#[\d-]+`),
	// every date form from the date extractor
	dateTextPattern,
	dateSlashPattern,
	dateISOPattern,
	// labelled amounts: "Amount: -420.00"
	regexp.MustCompile(`(?i)Amount:\s*-?[\d,]*(?:\.\d{2})?`),
	// debit/credit-suffixed amounts: "1,250.00 debited", "2,999.00 Dr"
	regexp.MustCompile(`(?i)-?\d[\d,]*(?:\.\d{2})?\s*(?:debited|credited|Dr|Cr)\b`),
	// currency amounts, or a rupee sign left over from the strip above
	regexp.MustCompile(`₹\s*-?[\d,]*(?:\.\d{2})?`),
	// balance clauses from the balance extractor
	regexp.MustCompile(`(?i)Balance after transaction:\s*₹?\s*[\d,]*(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)Available Balance\s*→?\s*₹?\s*[\d,]*(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)\bBal\b\s*[\d,]*(?:\.\d{2})?`),
	// bare field labels and the arrow glyph
	regexp.MustCompile(`(?i)Date:`),
	regexp.MustCompile(`(?i)Description:`),
	regexp.MustCompile(`→`),
}

var (
	// asterisks become spaces, not nothing, so "Uber*Airport" keeps two tokens
	asteriskPattern = regexp.MustCompile(`\*`)
	// a single trailing category tag from the closed set
	trailingCategoryPattern = regexp.MustCompile(`(?i)\s(?:Shopping|Food|Travel|Entertainment|Bills|Other)\s*$`)
	whitespaceRun           = regexp.MustCompile(`\s+`)
)

// extractDescription strips transaction metadata recognised by the other
// extractors out of the text and returns what remains as the narrative.
func extractDescription(text string) string {
	for _, p := range descriptionStrips {
		text = p.ReplaceAllString(text, "")
	}

	text = asteriskPattern.ReplaceAllString(text, " ")
	text = trailingCategoryPattern.ReplaceAllString(text, "")

	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackDescription
	}
	return text
}
