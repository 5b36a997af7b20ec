package store

import (
	"context"
	"errors"

	"github.com/insightdelivered/smartparse/internal/models"
)

// Page size bounds for cursor listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	// ErrMissingOrg is returned when a call lacks an organization id.
	ErrMissingOrg = errors.New("organization id is required")
	// ErrInvalidCursor is returned when a cursor does not resolve to a
	// stored transaction within the caller's organization.
	ErrInvalidCursor = errors.New("cursor does not match a stored transaction")
)

// Store persists parsed transactions under per-organization scoping. The
// organization id is supplied by the caller, never derived from parsed text;
// every read is filtered by it.
type Store interface {
	// SaveTransaction assigns an id and creation timestamp to the parsed
	// transaction and persists it under orgID.
	SaveTransaction(ctx context.Context, orgID string, parsed models.ParsedTransaction, rawText string) (*models.Transaction, error)

	// ListTransactions returns one page of orgID's transactions ordered by
	// descending creation time. cursor is the id of the last record of the
	// previous page ("" starts from the newest); limit falls back to
	// DefaultPageSize when non-positive and is capped at MaxPageSize.
	ListTransactions(ctx context.Context, orgID, cursor string, limit int) (*models.Page, error)

	Close() error
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
