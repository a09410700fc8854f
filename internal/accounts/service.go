package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/savings-core/pkg/audit"
)

// SavingsAccount is a newly opened savings account.
type SavingsAccount struct {
	ID          uuid.UUID
	Number      string
	ProductType string
	ProductID   string
	HolderName  string
	Currency    string
	CreatedAt   time.Time
}

// AccountStore persists opened accounts.
type AccountStore interface {
	Create(ctx context.Context, account *SavingsAccount) error
}

// Service opens savings accounts: allocate a sequence, synthesize the
// account number, persist the account. The sequence is burned even when the
// persist step fails; numbers are never reused.
type Service struct {
	sequences SequenceStore
	synth     *Synthesizer
	store     AccountStore
	trail     *audit.Trail
}

// NewService creates an account-opening service.
func NewService(sequences SequenceStore, synth *Synthesizer, store AccountStore, trail *audit.Trail) *Service {
	return &Service{sequences: sequences, synth: synth, store: store, trail: trail}
}

// Open allocates the next sequence for the product and creates the account
// under its synthesized number.
func (s *Service) Open(ctx context.Context, productType, productID, holderName, currency string) (*SavingsAccount, error) {
	seq, err := s.sequences.Next(ctx, productType, productID)
	if err != nil {
		return nil, err
	}

	number, err := s.synth.Synthesize(productID, seq)
	if err != nil {
		return nil, err
	}

	account := &SavingsAccount{
		ID:          uuid.New(),
		Number:      number,
		ProductType: productType,
		ProductID:   productID,
		HolderName:  holderName,
		Currency:    currency,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", number, err)
	}

	if _, err := s.trail.Record(audit.Event{
		Kind:      audit.EventAccountOpened,
		Reference: number,
		Detail:    productID,
	}); err != nil {
		return nil, err
	}

	return account, nil
}
