package fees

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/savings-core/pkg/money"
)

// FeeTransaction is a posted fee charge against an account.
type FeeTransaction struct {
	ID            uuid.UUID
	ChargeRef     string
	Amount        decimal.Decimal
	Currency      string
	EffectiveDate time.Time
}

// VATResult records the outcome of applying value-added tax to a fee
// transaction. It is immutable once constructed; Amount is zero whenever
// Applied is false.
type VATResult struct {
	Applied           bool
	Amount            decimal.Decimal
	Percentage        decimal.Decimal
	FeeTransactionRef uuid.UUID
	EffectiveDate     time.Time
	Backdated         bool
}

// ApplyVAT computes tax on a fee transaction. A zero percentage or an
// exempt charge yields Applied=false with a zero amount; neither is an
// error. Backdated is set whenever the fee's effective date precedes the
// posting date, independent of Applied — it alone signals that a balance
// recompute is needed downstream.
func ApplyVAT(feeTx *FeeTransaction, percentage decimal.Decimal, exempt bool, postingDate time.Time) VATResult {
	if feeTx == nil {
		return VATResult{Amount: decimal.Zero, Percentage: percentage}
	}

	result := VATResult{
		Amount:            decimal.Zero,
		Percentage:        percentage,
		FeeTransactionRef: feeTx.ID,
		EffectiveDate:     feeTx.EffectiveDate,
		Backdated:         feeTx.EffectiveDate.Before(postingDate),
	}

	if exempt || percentage.IsZero() {
		return result
	}

	result.Applied = true
	result.Amount = money.RoundHalfUp(
		feeTx.Amount.Mul(percentage).Div(decimal.NewFromInt(100)),
		feeTx.Currency,
	)
	return result
}
