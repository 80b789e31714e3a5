package commands_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCartRepository) UpdateIf(ctx context.Context, c *cart.Cart, expectedVersion uint64) (bool, error) {
	args := m.Called(ctx, c, expectedVersion)
	return args.Bool(0), args.Error(1)
}
func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockCheckoutRepository struct{ mock.Mock }

func (m *MockCheckoutRepository) Add(ctx context.Context, w *checkout.Wizard) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockCheckoutRepository) Update(ctx context.Context, w *checkout.Wizard) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockCheckoutRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Wizard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Wizard), args.Error(1)
}
func (m *MockCheckoutRepository) UpdateIf(
	ctx context.Context,
	w *checkout.Wizard,
	_ func(stored *checkout.Wizard) bool,
) (bool, error) {
	args := m.Called(ctx, w)
	return args.Bool(0), args.Error(1)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) GetDish(ctx context.Context, id string) (menu.Dish, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(menu.Dish), args.Error(1)
}
func (m *MockMenuCatalog) ListDishes(ctx context.Context) ([]menu.Dish, error) {
	args := m.Called(ctx)
	return args.Get(0).([]menu.Dish), args.Error(1)
}

type MockCartNotifier struct{ mock.Mock }

func (m *MockCartNotifier) NotifyCartChanged(ctx context.Context, change ports.CartChanged) {
	m.Called(ctx, change)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, t *tracking.Tracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTrackingRepository) Update(ctx context.Context, t *tracking.Tracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Tracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Tracking), args.Error(1)
}
func (m *MockTrackingRepository) GetAllInProgress(ctx context.Context) ([]*tracking.Tracking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*tracking.Tracking), args.Error(1)
}

type MockTrackingUoW struct{ mock.Mock }

func (m *MockTrackingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

// passthroughBreaker always runs fn.
type passthroughBreaker struct{}

func (passthroughBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
