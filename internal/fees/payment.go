package fees

import (
	"github.com/shopspring/decimal"
)

// PaymentResult is the aggregate returned to the transaction pipeline for
// one fee application. It is a pure projection, constructed fresh per
// transaction and never persisted.
type PaymentResult struct {
	FeeAmount   decimal.Decimal
	VATAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	NetAmount   decimal.Decimal
	Currency    string
	Successful  bool
	Message     string
}

// AggregatePayment combines a fee transaction and its VAT result into a
// single outcome record. Inputs are never mutated and no I/O is performed.
func AggregatePayment(feeTx *FeeTransaction, vat VATResult) PaymentResult {
	if feeTx == nil {
		return PaymentResult{
			FeeAmount:   decimal.Zero,
			VATAmount:   decimal.Zero,
			TotalAmount: decimal.Zero,
			NetAmount:   decimal.Zero,
			Successful:  false,
			Message:     "no fee transaction",
		}
	}

	vatAmount := decimal.Zero
	if vat.Applied {
		vatAmount = vat.Amount
	}

	return PaymentResult{
		FeeAmount:   feeTx.Amount,
		VATAmount:   vatAmount,
		TotalAmount: feeTx.Amount.Add(vatAmount),
		NetAmount:   feeTx.Amount,
		Currency:    feeTx.Currency,
		Successful:  true,
	}
}
