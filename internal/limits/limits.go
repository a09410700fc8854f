package limits

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/savings-core/pkg/money"
)

// Profile is a classification-scoped deposit limit: a cap on any single
// deposit and a cap on the resulting account balance.
type Profile struct {
	ClassificationRef      string
	MaxSingleDeposit       decimal.Decimal
	CumulativeBalanceLimit decimal.Decimal
	Currency               string
}

// ProfileStore resolves the limit profile mapped to a client
// classification. Implementations are read-only; a classification with no
// mapping returns (nil, nil).
type ProfileStore interface {
	ProfileFor(ctx context.Context, classificationRef string) (*Profile, error)
}

// Evaluator checks proposed deposits against limit profiles.
//
// Contract: a classification with no mapped profile has no enforced limit,
// so ExceedsLimits returns false for it, and false again when both caps
// hold. Currency may never be mixed between the transaction, the balance
// and the configured limit; a mismatch is a configuration error.
type Evaluator struct {
	store ProfileStore
}

// NewEvaluator creates an evaluator over the given profile store.
func NewEvaluator(store ProfileStore) *Evaluator {
	return &Evaluator{store: store}
}

// ExceedsLimits reports whether posting a deposit of amount on top of
// currentBalance would break the classification's limits.
func (e *Evaluator) ExceedsLimits(ctx context.Context, classificationRef string, currentBalance, amount money.Amount) (bool, error) {
	if currentBalance.Currency != amount.Currency {
		return false, &money.CurrencyMismatchError{Left: currentBalance.Currency, Right: amount.Currency}
	}

	profile, err := e.store.ProfileFor(ctx, classificationRef)
	if err != nil {
		return false, fmt.Errorf("failed to look up limit profile for %s: %w", classificationRef, err)
	}
	if profile == nil {
		// No mapping means no limit enforced.
		return false, nil
	}
	if profile.Currency != amount.Currency {
		return false, &money.CurrencyMismatchError{Left: profile.Currency, Right: amount.Currency}
	}

	if amount.Value.GreaterThan(profile.MaxSingleDeposit) {
		return true, nil
	}
	if currentBalance.Value.Add(amount.Value).GreaterThan(profile.CumulativeBalanceLimit) {
		return true, nil
	}
	return false, nil
}
