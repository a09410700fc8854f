package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrAllocationFailed reports that the atomic upsert returned no value.
// Defensive: with a healthy database this cannot happen.
var ErrAllocationFailed = errors.New("sequence allocation returned no value")

// SequenceStore allocates monotonically increasing per-product integers.
// Allocated values are never decremented and never reused, even when the
// surrounding account creation later fails.
type SequenceStore interface {
	Next(ctx context.Context, productType, productID string) (int64, error)
}

// SQLSequenceStore allocates sequences over database/sql (sqlite, mysql).
// Atomicity comes from a single upsert-and-return statement, never from
// read-then-write.
type SQLSequenceStore struct {
	db *sql.DB
}

// NewSQLSequenceStore creates a sequence store over the given database.
func NewSQLSequenceStore(db *sql.DB) *SQLSequenceStore {
	return &SQLSequenceStore{db: db}
}

// Schema returns the DDL for the sequence table.
func Schema() string {
	return `
        CREATE TABLE IF NOT EXISTS account_sequences (
            product_type TEXT NOT NULL,
            product_id   TEXT NOT NULL,
            last_number  BIGINT NOT NULL,
            PRIMARY KEY (product_type, product_id)
        )
    `
}

// Next atomically increments and returns the counter for the
// (productType, productID) key, initializing it to 1 on first use.
func (ss *SQLSequenceStore) Next(ctx context.Context, productType, productID string) (int64, error) {
	query := `
        INSERT INTO account_sequences (product_type, product_id, last_number)
        VALUES (?, ?, 1)
        ON CONFLICT (product_type, product_id)
        DO UPDATE SET last_number = account_sequences.last_number + 1
        RETURNING last_number
    `

	var next int64
	err := ss.db.QueryRowContext(ctx, query, productType, productID).Scan(&next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("product %s/%s: %w", productType, productID, ErrAllocationFailed)
		}
		return 0, fmt.Errorf("failed to allocate sequence for %s/%s: %w", productType, productID, err)
	}
	return next, nil
}
