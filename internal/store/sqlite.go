package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/insightdelivered/smartparse/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is the file-backed Store implementation.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and runs
// pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("can not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("can not connect with database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLiteStore) SaveTransaction(ctx context.Context, orgID string, parsed models.ParsedTransaction, rawText string) (*models.Transaction, error) {
	if orgID == "" {
		return nil, ErrMissingOrg
	}

	txn := &models.Transaction{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		Date:        parsed.Date,
		Description: parsed.Description,
		Amount:      parsed.Amount,
		Type:        parsed.Type,
		Balance:     parsed.Balance,
		Confidence:  parsed.Confidence,
		RawText:     rawText,
		CreatedAt:   time.Now().UTC(),
	}

	var balance sql.NullFloat64
	if parsed.Balance != nil {
		balance = sql.NullFloat64{Float64: *parsed.Balance, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO transactions (id, org_id, date, description, amount, type, balance, confidence, raw_text, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		txn.ID, txn.OrgID, txn.Date.UTC().Unix(), txn.Description, txn.Amount,
		string(txn.Type), balance, txn.Confidence, txn.RawText, txn.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return txn, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, orgID, cursor string, limit int) (*models.Page, error) {
	if orgID == "" {
		return nil, ErrMissingOrg
	}
	limit = clampLimit(limit)

	query := `
        SELECT id, org_id, date, description, amount, type, balance, confidence, raw_text, created_at
        FROM transactions
        WHERE org_id = ?`
	args := []any{orgID}

	if cursor != "" {
		// The cursor must resolve within the same organization.
		var curCreated int64
		err := s.db.QueryRowContext(ctx,
			`SELECT created_at FROM transactions WHERE id = ? AND org_id = ?;`,
			cursor, orgID,
		).Scan(&curCreated)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCursor
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cursor: %w", err)
		}
		query += ` AND (created_at < ? OR (created_at = ? AND id < ?))`
		args = append(args, curCreated, curCreated, cursor)
	}

	// One extra row tells us whether more pages exist.
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?;`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	page := &models.Page{Transactions: txns}
	if len(txns) > limit {
		page.Transactions = txns[:limit]
		page.HasMore = true
	}
	if n := len(page.Transactions); n > 0 {
		page.NextCursor = page.Transactions[n-1].ID
	}
	return page, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		txn       models.Transaction
		txnType   string
		date      int64
		createdAt int64
		balance   sql.NullFloat64
	)
	err := rows.Scan(&txn.ID, &txn.OrgID, &date, &txn.Description, &txn.Amount,
		&txnType, &balance, &txn.Confidence, &txn.RawText, &createdAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = models.TransactionType(txnType)
	txn.Date = time.Unix(date, 0).UTC()
	txn.CreatedAt = time.Unix(0, createdAt).UTC()
	if balance.Valid {
		b := balance.Float64
		txn.Balance = &b
	}
	return txn, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
