// Package memory keeps shopping sessions in process memory and serves the
// static menu. Sessions are owned by one browser tab and are lost on restart.
package memory

import (
	"context"
	"sync"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// CartStore implements ports.CartRepository. Carts are cloned on the way in
// and out, so callers never share state with the store.
type CartStore struct {
	mu    sync.RWMutex
	carts map[kernel.UUID]*cart.Cart
}

// NewCartStore creates an empty store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[kernel.UUID]*cart.Cart)}
}

// Add stores a new cart. Adding an id twice is an error.
func (s *CartStore) Add(_ context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("cart already exists")
	}
	s.carts[aggregate.ID()] = aggregate.Clone()
	return nil
}

// UpdateIf replaces the stored cart when its version still equals
// expectedVersion.
func (s *CartStore) UpdateIf(_ context.Context, aggregate *cart.Cart, expectedVersion uint64) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[aggregate.ID()]
	if !ok {
		return false, errs.NewObjectNotFoundError("cart", aggregate.ID().String())
	}
	if stored.Version() != expectedVersion {
		return false, nil
	}

	s.carts[aggregate.ID()] = aggregate.Clone()
	return true, nil
}

// Get returns a copy of the stored cart.
func (s *CartStore) Get(_ context.Context, cartID kernel.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[cartID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cart", cartID.String())
	}
	return c.Clone(), nil
}
