package models

import "time"

// TransactionType classifies the direction of money movement.
type TransactionType string

const (
	TypeDebit  TransactionType = "DEBIT"
	TypeCredit TransactionType = "CREDIT"
)

// ParsedTransaction is the parser's best-effort reading of one free-text
// alert. Amount is always the absolute magnitude; direction lives in Type.
// Balance is nil when no balance clause was found (absent, not zero).
type ParsedTransaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Balance     *float64        `json:"balance,omitempty"`
	Confidence  int             `json:"confidence"` // 0-100 rule-based completeness score
}

// Transaction is a persisted record. ID, OrgID and CreatedAt are assigned by
// the store; the organization is supplied by the caller and never inferred
// from the parsed text.
type Transaction struct {
	ID          string          `json:"id"`
	OrgID       string          `json:"orgId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Balance     *float64        `json:"balance,omitempty"`
	Confidence  int             `json:"confidence"`
	RawText     string          `json:"rawText,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Page is one slice of an organization's transactions, newest first.
// NextCursor is the ID of the last record in Transactions and resumes the
// listing; HasMore reports whether records exist beyond this page.
type Page struct {
	Transactions []Transaction `json:"transactions"`
	NextCursor   string        `json:"nextCursor,omitempty"`
	HasMore      bool          `json:"hasMore"`
}
