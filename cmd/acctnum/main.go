// Command acctnum allocates the next account sequence for a product and
// prints the synthesized account number. It is an operations tool for
// provisioning and for verifying number generation against a live
// sequence table.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/savings-core/internal/accounts"
	"github.com/example/savings-core/internal/config"
)

func main() {
	productType := flag.String("product-type", "SAVINGS", "product type the sequence is scoped to")
	productID := flag.String("product-id", "", "product the account belongs to")
	prefix := flag.String("prefix", "", "2-digit account prefix configured for the product")
	flag.Parse()

	if *productID == "" || *prefix == "" {
		log.Fatal("both -product-id and -prefix are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	synth, err := accounts.NewSynthesizer(cfg.InstitutionCode, map[string]string{*productID: *prefix})
	if err != nil {
		log.Fatalf("Failed to build synthesizer: %v", err)
	}

	ctx := context.Background()
	sequences, cleanup, err := openSequenceStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open sequence store: %v", err)
	}
	defer cleanup()

	seq, err := sequences.Next(ctx, *productType, *productID)
	if err != nil {
		log.Fatalf("Failed to allocate sequence: %v", err)
	}

	number, err := synth.Synthesize(*productID, seq)
	if err != nil {
		log.Fatalf("Failed to synthesize account number: %v", err)
	}

	fmt.Println(number)
}

// openSequenceStore picks the backend from the database URL: PostgreSQL
// for postgres:// URLs, a local sqlite file otherwise.
func openSequenceStore(ctx context.Context, databaseURL string) (accounts.SequenceStore, func(), error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return accounts.NewPostgresStore(pool), pool.Close, nil
	}

	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(accounts.Schema()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return accounts.NewSQLSequenceStore(db), func() { db.Close() }, nil
}
