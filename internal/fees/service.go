package fees

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/savings-core/pkg/audit"
)

// Charge is a fee definition: the slab schedule that prices it, the
// stakeholder splits that distribute it, and its VAT treatment.
type Charge struct {
	ID            string
	Name          string
	Currency      string
	Schedule      Schedule
	Splits        []Split
	VATExempt     bool
	VATPercentage decimal.Decimal
}

// Outcome bundles everything a single fee application produced.
type Outcome struct {
	FeeTransaction *FeeTransaction
	Shares         []Share
	VAT            VATResult
	Payment        PaymentResult
}

// Service runs the fee pipeline for a charge: resolve the slab fee, mint a
// fee transaction, distribute stakeholder shares, apply VAT, and aggregate
// the payment result. The only side effect is the audit trail append.
type Service struct {
	trail *audit.Trail
}

// NewService creates a fee service writing to the given audit trail.
func NewService(trail *audit.Trail) *Service {
	return &Service{trail: trail}
}

// ChargeTransaction applies the charge to a transaction amount. The
// effective date is the transaction's date; postingDate is today's posting
// date and drives the backdated flag on the VAT result.
func (s *Service) ChargeTransaction(charge Charge, amount decimal.Decimal, effectiveDate, postingDate time.Time) (*Outcome, error) {
	fee, err := charge.Schedule.Resolve(amount)
	if err != nil {
		return nil, fmt.Errorf("charge %s: %w", charge.ID, err)
	}

	feeTx := &FeeTransaction{
		ID:            uuid.New(),
		ChargeRef:     charge.ID,
		Amount:        fee,
		Currency:      charge.Currency,
		EffectiveDate: effectiveDate,
	}

	shares, err := DistributeShares(fee, charge.Splits, charge.Currency)
	if err != nil {
		return nil, fmt.Errorf("charge %s: %w", charge.ID, err)
	}

	vat := ApplyVAT(feeTx, charge.VATPercentage, charge.VATExempt, postingDate)
	payment := AggregatePayment(feeTx, vat)

	if _, err := s.trail.Record(audit.Event{
		Kind:      audit.EventFeeCharged,
		Reference: feeTx.ID.String(),
		Amount:    feeTx.Amount.String(),
		Currency:  feeTx.Currency,
		Detail:    charge.ID,
	}); err != nil {
		return nil, err
	}
	if vat.Applied {
		if _, err := s.trail.Record(audit.Event{
			Kind:      audit.EventVATApplied,
			Reference: feeTx.ID.String(),
			Amount:    vat.Amount.String(),
			Currency:  feeTx.Currency,
		}); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		FeeTransaction: feeTx,
		Shares:         shares,
		VAT:            vat,
		Payment:        payment,
	}, nil
}
