package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists accounts and allocates sequences on PostgreSQL.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore creates a store over the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

// Next atomically increments and returns the sequence counter for the
// (productType, productID) key, initializing it to 1 on first use.
func (ps *PostgresStore) Next(ctx context.Context, productType, productID string) (int64, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var next int64
	err := ps.Pool.QueryRow(queryCtx, `
        INSERT INTO account_sequences (product_type, product_id, last_number)
        VALUES ($1, $2, 1)
        ON CONFLICT (product_type, product_id)
        DO UPDATE SET last_number = account_sequences.last_number + 1
        RETURNING last_number
    `, productType, productID).Scan(&next)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product %s/%s: %w", productType, productID, ErrAllocationFailed)
		}
		return 0, fmt.Errorf("failed to allocate sequence for %s/%s: %w", productType, productID, err)
	}
	return next, nil
}

// Create inserts a new account with transaction safety.
func (ps *PostgresStore) Create(ctx context.Context, account *SavingsAccount) error {
	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := ps.createWithRetry(ctx, account)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "40001" {
				// Serialization failure, retry
				if attempt == maxRetries-1 {
					return fmt.Errorf("failed to create account after %d retries due to serialization failure: %w", maxRetries, err)
				}
				time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
				continue
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		break
	}

	return nil
}

// createWithRetry handles the actual account creation with SERIALIZABLE isolation
func (ps *PostgresStore) createWithRetry(ctx context.Context, account *SavingsAccount) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := ps.Pool.Acquire(queryCtx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(queryCtx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(queryCtx)

	// The synthesized number must be unique; a collision means the sequence
	// table was tampered with.
	var exists bool
	err = tx.QueryRow(queryCtx,
		"SELECT EXISTS(SELECT 1 FROM savings_accounts WHERE account_number = $1 FOR UPDATE)",
		account.Number).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return fmt.Errorf("account number %s already exists", account.Number)
	}

	_, err = tx.Exec(queryCtx, `
        INSERT INTO savings_accounts (id, account_number, product_type, product_id, holder_name, currency_code, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, account.ID, account.Number, account.ProductType, account.ProductID, account.HolderName, account.Currency, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	if err := tx.Commit(queryCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
