package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/insightdelivered/smartparse/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)
}

func TestParse_AllFieldsValid(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}

	got := p.Parse("Date: 11 Dec 2025\nDescription: STARBUCKS COFFEE MUMBAI\nAmount: -420.00\nBalance after transaction: 18,420.50")

	wantDate := time.Date(2025, time.December, 11, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(wantDate) {
		t.Errorf("Date: got %v, want %v", got.Date, wantDate)
	}
	if got.Description != "STARBUCKS COFFEE MUMBAI" {
		t.Errorf("Description: got %q, want %q", got.Description, "STARBUCKS COFFEE MUMBAI")
	}
	if got.Amount != 420.00 {
		t.Errorf("Amount: got %f, want %f", got.Amount, 420.00)
	}
	if got.Type != models.TypeDebit {
		t.Errorf("Type: got %q, want %q", got.Type, models.TypeDebit)
	}
	if got.Balance == nil || *got.Balance != 18420.50 {
		t.Errorf("Balance: got %v, want 18420.50", got.Balance)
	}
	if got.Confidence != 100 {
		t.Errorf("Confidence: got %d, want 100", got.Confidence)
	}
}

func TestParse_DayFirstDate(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}

	got := p.Parse("Uber Ride * Airport Drop\n12/11/2025 → ₹1,250.00 debited\nAvailable Balance → ₹17,170.50")

	// 12/11/2025 is 12 November, never 11 December.
	if got.Date.Day() != 12 || got.Date.Month() != time.November || got.Date.Year() != 2025 {
		t.Errorf("Date: got %v, want 12 Nov 2025", got.Date)
	}
	if got.Amount != 1250.00 {
		t.Errorf("Amount: got %f, want %f", got.Amount, 1250.00)
	}
	if got.Type != models.TypeDebit {
		t.Errorf("Type: got %q, want %q", got.Type, models.TypeDebit)
	}
	if got.Balance == nil || *got.Balance != 17170.50 {
		t.Errorf("Balance: got %v, want 17170.50", got.Balance)
	}

	if !strings.Contains(got.Description, "Uber") || !strings.Contains(got.Description, "Airport") {
		t.Errorf("Description: got %q, want it to mention Uber and Airport", got.Description)
	}
	if strings.Contains(got.Description, "→") {
		t.Errorf("Description: arrow glyph not stripped: %q", got.Description)
	}
	if strings.Contains(got.Description, "₹") || strings.Contains(got.Description, "1,250") {
		t.Errorf("Description: currency amount not stripped: %q", got.Description)
	}
}

func TestParse_NoisyTokens(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}

	got := p.Parse("txn123 2025-12-10 Amazon.in Order #403-1234567-8901234 ₹2,999.00 Dr Bal 14171.50 Shopping")

	if !strings.Contains(got.Description, "Amazon") {
		t.Errorf("Description: got %q, want it to mention Amazon", got.Description)
	}
	if strings.Contains(got.Description, "txn123") || strings.Contains(got.Description, "#403") {
		t.Errorf("Description: noise tokens not stripped: %q", got.Description)
	}
	if strings.Contains(got.Description, "Shopping") {
		t.Errorf("Description: trailing category tag not stripped: %q", got.Description)
	}
	if got.Date.Year() != 2025 || got.Date.Month() != time.December || got.Date.Day() != 10 {
		t.Errorf("Date: got %v, want 10 Dec 2025", got.Date)
	}
	if got.Amount != 2999.00 {
		t.Errorf("Amount: got %f, want %f", got.Amount, 2999.00)
	}
	if got.Type != models.TypeDebit {
		t.Errorf("Type: got %q, want %q", got.Type, models.TypeDebit)
	}
	if got.Balance == nil || *got.Balance != 14171.50 {
		t.Errorf("Balance: got %v, want 14171.50", got.Balance)
	}
}

func TestParse_MissingBalance(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}

	got := p.Parse("Date: 11 Dec 2025\nGROCERY MART\nAmount: 640.00")

	if got.Balance != nil {
		t.Errorf("Balance: got %v, want absent", *got.Balance)
	}
	if got.Confidence >= 100 {
		t.Errorf("Confidence: got %d, want < 100", got.Confidence)
	}
	if got.Confidence != 85 {
		t.Errorf("Confidence: got %d, want 85 (date + amount + description)", got.Confidence)
	}
}

func TestParse_EmptyAndGarbageInput(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
		{"punctuation only", "--- *** →"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.text)

			if got.Description != "Transaction" {
				t.Errorf("Description: got %q, want %q", got.Description, "Transaction")
			}
			if got.Amount != 0 {
				t.Errorf("Amount: got %f, want 0", got.Amount)
			}
			if got.Type != models.TypeDebit {
				t.Errorf("Type: got %q, want %q", got.Type, models.TypeDebit)
			}
			if got.Balance != nil {
				t.Errorf("Balance: got %v, want absent", *got.Balance)
			}
			if got.Confidence != 0 {
				t.Errorf("Confidence: got %d, want 0", got.Confidence)
			}
			// The date fallback still yields a usable date.
			if !got.Date.Equal(fixedClock()) {
				t.Errorf("Date: got %v, want the clock's current time", got.Date)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := &TransactionParser{Now: fixedClock}
	text := "15/03/2025 COFFEE HOUSE ₹180.00 debited Bal 9,500.00"

	first := p.Parse(text)
	second := p.Parse(text)

	if first.Date != second.Date || first.Description != second.Description ||
		first.Amount != second.Amount || first.Type != second.Type ||
		first.Confidence != second.Confidence {
		t.Errorf("parse not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if (first.Balance == nil) != (second.Balance == nil) {
		t.Fatal("balance presence differs between parses")
	}
	if first.Balance != nil && *first.Balance != *second.Balance {
		t.Errorf("balance differs: %f vs %f", *first.Balance, *second.Balance)
	}
}

func TestParse_OutputInvariants(t *testing.T) {
	p := &TransactionParser{}

	inputs := []string{
		"",
		"random words with no structure at all",
		"Date: 1 Jan 2025 Amount: 1.00",
		"₹-99.00 credited",
		"13/13/2025 impossible date 500 debited",
		"Amount: 0.00 nothing moved",
		"#123-456 txn999 * → Bal 0",
		"SALARY CREDIT 2,50,000.00 Cr",
		"Available Balance → ₹0.00",
		strings.Repeat("x", 10_000),
	}

	for _, text := range inputs {
		got := p.Parse(text)

		if got.Confidence < 0 || got.Confidence > 100 {
			t.Errorf("confidence out of range for %.40q: %d", text, got.Confidence)
		}
		if got.Amount < 0 {
			t.Errorf("negative amount for %.40q: %f", text, got.Amount)
		}
		if got.Type != models.TypeDebit && got.Type != models.TypeCredit {
			t.Errorf("unexpected type for %.40q: %q", text, got.Type)
		}
		if got.Description == "" {
			t.Errorf("empty description for %.40q", text)
		}
		if got.Date.IsZero() {
			t.Errorf("zero date for %.40q", text)
		}
	}
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name                             string
		dateOK, amountOK, descOK, balOK  bool
		want                             int
	}{
		{"all valid is the flat award", true, true, true, true, 100},
		{"nothing valid", false, false, false, false, 0},
		{"date only", true, false, false, false, 30},
		{"amount only", false, true, false, false, 30},
		{"description only", false, false, true, false, 25},
		{"balance only", false, false, false, true, 15},
		{"all but balance", true, true, true, false, 85},
		{"all but description", true, true, false, true, 75},
		{"all but date", false, true, true, true, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreConfidence(tt.dateOK, tt.amountOK, tt.descOK, tt.balOK)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
