package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date patterns seen across the supported alert dialects, tried in priority
// order. First match wins; later forms are not attempted.
var (
	// "11 Dec 2025", optionally labelled: "Date: 11 Dec 2025"
	dateTextPattern = regexp.MustCompile(`(?i)(?:Date:\s*)?\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)
	// "12/11/2025", day first (Indian convention), never month first
	dateSlashPattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	// "2025-12-10" ISO-like
	dateISOPattern = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
)

// monthIndex maps lower-cased three-letter abbreviations to calendar months.
var monthIndex = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// extractDate returns the first date found in the text and whether any
// pattern matched. When nothing matches it falls back to now(); the second
// return lets the confidence scorer tell a fallback from a real match.
//
// The numeric forms carry no range validation: "13/13/2025" still matches and
// time.Date normalises it rather than failing.
func extractDate(text string, now func() time.Time) (time.Time, bool) {
	if m := dateTextPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		month := monthIndex[strings.ToLower(m[2])]
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	if m := dateSlashPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	if m := dateISOPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	return now(), false
}
