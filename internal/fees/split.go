package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/savings-core/pkg/money"
)

// SplitKind selects how a stakeholder's share of a fee is computed.
type SplitKind string

const (
	SplitPercentage SplitKind = "PERCENTAGE"
	SplitFlatAmount SplitKind = "FLAT"
)

// Split distributes a computed fee to one stakeholder, either as a
// percentage of the fee or as a flat amount. Splits referenced by historical
// transactions are deactivated, never deleted.
type Split struct {
	StakeholderRef string
	Kind           SplitKind
	Value          decimal.Decimal
	Active         bool
}

// SplitExceedsFeeError reports a flat share larger than the fee it is
// carved from.
type SplitExceedsFeeError struct {
	StakeholderRef string
	Share          decimal.Decimal
	Fee            decimal.Decimal
}

func (e *SplitExceedsFeeError) Error() string {
	return fmt.Sprintf("flat split %s for stakeholder %s exceeds fee %s", e.Share, e.StakeholderRef, e.Fee)
}

// Calculate computes the stakeholder's share of totalFee. Percentage shares
// are rounded half-up to the currency's minor units; flat shares are taken
// verbatim and must not exceed the fee.
func (s Split) Calculate(totalFee decimal.Decimal, currency string) (decimal.Decimal, error) {
	switch s.Kind {
	case SplitPercentage:
		share := totalFee.Mul(s.Value).Div(decimal.NewFromInt(100))
		return money.RoundHalfUp(share, currency), nil
	case SplitFlatAmount:
		if s.Value.GreaterThan(totalFee) {
			return decimal.Decimal{}, &SplitExceedsFeeError{
				StakeholderRef: s.StakeholderRef,
				Share:          s.Value,
				Fee:            totalFee,
			}
		}
		return s.Value, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unknown split kind: %s", s.Kind)
	}
}

// Share is one stakeholder's computed portion of a fee.
type Share struct {
	StakeholderRef string
	Amount         decimal.Decimal
}

// DistributeShares computes every active split's share of totalFee. Each
// percentage share rounds half-up on its own, so the raw sum can land one
// minor unit above the fee; shares are capped against the undistributed
// remainder so the total never exceeds totalFee.
func DistributeShares(totalFee decimal.Decimal, splits []Split, currency string) ([]Share, error) {
	var shares []Share

	remaining := totalFee
	for _, sp := range splits {
		if !sp.Active {
			continue
		}
		amount, err := sp.Calculate(totalFee, currency)
		if err != nil {
			return nil, err
		}
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		remaining = remaining.Sub(amount)
		shares = append(shares, Share{StakeholderRef: sp.StakeholderRef, Amount: amount})
	}
	return shares, nil
}

// SplitUpdate is a partial edit; nil fields are left untouched.
type SplitUpdate struct {
	Kind   *SplitKind
	Value  *decimal.Decimal
	Active *bool
}

// ApplyUpdate applies the fields present in the update and returns a map of
// field name to new value for the fields that actually changed. A request
// that sets every field to its current value returns an empty map and
// performs no mutation.
func (s *Split) ApplyUpdate(u SplitUpdate) map[string]any {
	changes := make(map[string]any)

	if u.Kind != nil && *u.Kind != s.Kind {
		changes["kind"] = *u.Kind
	}
	if u.Value != nil && !u.Value.Equal(s.Value) {
		changes["value"] = *u.Value
	}
	if u.Active != nil && *u.Active != s.Active {
		changes["active"] = *u.Active
	}

	if len(changes) == 0 {
		return changes
	}

	if v, ok := changes["kind"]; ok {
		s.Kind = v.(SplitKind)
	}
	if v, ok := changes["value"]; ok {
		s.Value = v.(decimal.Decimal)
	}
	if v, ok := changes["active"]; ok {
		s.Active = v.(bool)
	}
	return changes
}
