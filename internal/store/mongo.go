package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/insightdelivered/smartparse/internal/models"
)

const transactionsCollection = "transactions"

// mongoTransaction is the BSON shape of a stored transaction. Timestamps are
// kept as integers so the cursor comparison matches the SQLite backend.
type mongoTransaction struct {
	ID          string   `bson:"_id"`
	OrgID       string   `bson:"org_id"`
	Date        int64    `bson:"date"`
	Description string   `bson:"description"`
	Amount      float64  `bson:"amount"`
	Type        string   `bson:"type"`
	Balance     *float64 `bson:"balance,omitempty"`
	Confidence  int      `bson:"confidence"`
	RawText     string   `bson:"raw_text,omitempty"`
	CreatedAt   int64    `bson:"created_at"`
}

// MongoStore is the MongoDB-backed Store implementation.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	slog.DebugContext(ctx, "connecting to MongoDB", "database", database)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(transactionsCollection),
	}, nil
}

func (m *MongoStore) SaveTransaction(ctx context.Context, orgID string, parsed models.ParsedTransaction, rawText string) (*models.Transaction, error) {
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

	doc := mongoTransaction{
		ID:          txn.ID,
		OrgID:       txn.OrgID,
		Date:        txn.Date.UTC().Unix(),
		Description: txn.Description,
		Amount:      txn.Amount,
		Type:        string(txn.Type),
		Balance:     txn.Balance,
		Confidence:  txn.Confidence,
		RawText:     txn.RawText,
		CreatedAt:   txn.CreatedAt.UnixNano(),
	}

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return txn, nil
}

func (m *MongoStore) ListTransactions(ctx context.Context, orgID, cursor string, limit int) (*models.Page, error) {
	if orgID == "" {
		return nil, ErrMissingOrg
	}
	limit = clampLimit(limit)

	filter := bson.M{"org_id": orgID}
	if cursor != "" {
		var cur mongoTransaction
		err := m.coll.FindOne(ctx, bson.M{"_id": cursor, "org_id": orgID}).Decode(&cur)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCursor
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cursor: %w", err)
		}
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": cur.CreatedAt}},
			bson.M{"created_at": cur.CreatedAt, "_id": bson.M{"$lt": cur.ID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit + 1))

	iter, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var docs []mongoTransaction
	if err := iter.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	var txns []models.Transaction
	for _, d := range docs {
		txns = append(txns, models.Transaction{
			ID:          d.ID,
			OrgID:       d.OrgID,
			Date:        time.Unix(d.Date, 0).UTC(),
			Description: d.Description,
			Amount:      d.Amount,
			Type:        models.TransactionType(d.Type),
			Balance:     d.Balance,
			Confidence:  d.Confidence,
			RawText:     d.RawText,
			CreatedAt:   time.Unix(0, d.CreatedAt).UTC(),
		})
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

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
