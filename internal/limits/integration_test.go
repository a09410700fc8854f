package limits

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set; skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))
	t.Cleanup(pool.Close)

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS limit_profiles (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            max_single_deposit NUMERIC NOT NULL,
            cumulative_balance_limit NUMERIC NOT NULL,
            currency TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS classification_limit_mappings (
            classification_ref TEXT PRIMARY KEY,
            profile_id UUID NOT NULL REFERENCES limit_profiles(id)
        )`,
		`TRUNCATE classification_limit_mappings, limit_profiles`,
		`WITH p AS (
            INSERT INTO limit_profiles (max_single_deposit, cumulative_balance_limit, currency)
            VALUES (1000, 5000, 'EUR') RETURNING id
        )
        INSERT INTO classification_limit_mappings (classification_ref, profile_id)
        SELECT 'retail', id FROM p`,
	}
	for _, migration := range migrations {
		_, err := pool.Exec(context.Background(), migration)
		require.NoError(t, err)
	}
	return pool
}

func TestPostgresProfileLookup(t *testing.T) {
	store := NewPostgresStore(integrationPool(t))
	ctx := context.Background()

	profile, err := store.ProfileFor(ctx, "retail")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.MaxSingleDeposit.Equal(dec("1000")))
	assert.True(t, profile.CumulativeBalanceLimit.Equal(dec("5000")))
	assert.Equal(t, "EUR", profile.Currency)

	unmapped, err := store.ProfileFor(ctx, "institutional")
	require.NoError(t, err)
	assert.Nil(t, unmapped)
}

func TestPostgresEvaluatorEndToEnd(t *testing.T) {
	evaluator := NewEvaluator(NewPostgresStore(integrationPool(t)))
	ctx := context.Background()

	exceeds, err := evaluator.ExceedsLimits(ctx, "retail", eur("4500"), eur("600"))
	require.NoError(t, err)
	assert.True(t, exceeds)

	exceeds, err = evaluator.ExceedsLimits(ctx, "retail", eur("100"), eur("100"))
	require.NoError(t, err)
	assert.False(t, exceeds)
}
