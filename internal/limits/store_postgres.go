package limits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore reads limit profiles from PostgreSQL. One mapping row links
// a classification to exactly one profile.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore creates a profile store over the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

// ProfileFor returns the active profile mapped to the classification, or
// nil when the classification has no mapping.
func (ps *PostgresStore) ProfileFor(ctx context.Context, classificationRef string) (*Profile, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		maxSingle  string
		cumulative string
		currency   string
	)
	err := ps.Pool.QueryRow(queryCtx, `
        SELECT p.max_single_deposit::text, p.cumulative_balance_limit::text, p.currency
        FROM limit_profiles p
        JOIN classification_limit_mappings m ON m.profile_id = p.id
        WHERE m.classification_ref = $1 AND p.active
    `, classificationRef).Scan(&maxSingle, &cumulative, &currency)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query limit profile: %w", err)
	}

	maxSingleDec, err := decimal.NewFromString(maxSingle)
	if err != nil {
		return nil, fmt.Errorf("malformed max_single_deposit for %s: %w", classificationRef, err)
	}
	cumulativeDec, err := decimal.NewFromString(cumulative)
	if err != nil {
		return nil, fmt.Errorf("malformed cumulative_balance_limit for %s: %w", classificationRef, err)
	}

	return &Profile{
		ClassificationRef:      classificationRef,
		MaxSingleDeposit:       maxSingleDec,
		CumulativeBalanceLimit: cumulativeDec,
		Currency:               currency,
	}, nil
}
