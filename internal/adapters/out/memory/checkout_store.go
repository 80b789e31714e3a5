package memory

import (
	"context"
	"sync"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// CheckoutStore implements ports.CheckoutRepository, one wizard per cart.
type CheckoutStore struct {
	mu      sync.Mutex
	wizards map[kernel.UUID]*checkout.Wizard
}

// NewCheckoutStore creates an empty store.
func NewCheckoutStore() *CheckoutStore {
	return &CheckoutStore{wizards: make(map[kernel.UUID]*checkout.Wizard)}
}

// Add stores the wizard of a new cart.
func (s *CheckoutStore) Add(_ context.Context, aggregate *checkout.Wizard) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wizards[aggregate.CartID()]; ok {
		return errs.NewValueIsInvalidError("checkout already exists")
	}
	s.wizards[aggregate.CartID()] = aggregate.Clone()
	return nil
}

// Update replaces the stored wizard unconditionally.
func (s *CheckoutStore) Update(ctx context.Context, aggregate *checkout.Wizard) error {
	_, err := s.UpdateIf(ctx, aggregate, func(*checkout.Wizard) bool { return true })
	return err
}

// Get returns a copy of the stored wizard.
func (s *CheckoutStore) Get(_ context.Context, cartID kernel.UUID) (*checkout.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wizards[cartID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("checkout", cartID.String())
	}
	return w.Clone(), nil
}

// UpdateIf checks cond against the stored wizard and replaces it in the same
// critical section.
func (s *CheckoutStore) UpdateIf(
	_ context.Context,
	aggregate *checkout.Wizard,
	cond func(stored *checkout.Wizard) bool,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.wizards[aggregate.CartID()]
	if !ok {
		return false, errs.NewObjectNotFoundError("checkout", aggregate.CartID().String())
	}
	if !cond(stored.Clone()) {
		return false, nil
	}

	s.wizards[aggregate.CartID()] = aggregate.Clone()
	return true, nil
}
