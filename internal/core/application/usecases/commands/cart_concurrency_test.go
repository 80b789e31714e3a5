package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// interleavingCartStore runs beforeWrite once, right before the first write
// reaches the store.
type interleavingCartStore struct {
	*memory.CartStore
	once        sync.Once
	beforeWrite func()
}

func (s *interleavingCartStore) UpdateIf(ctx context.Context, c *cart.Cart, expectedVersion uint64) (bool, error) {
	s.once.Do(s.beforeWrite)
	return s.CartStore.UpdateIf(ctx, c, expectedVersion)
}

// interleavingBreaker runs during right before the order is placed.
type interleavingBreaker struct {
	during func(ctx context.Context)
}

func (b interleavingBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	b.during(ctx)
	return fn(ctx)
}

type cartEnv struct {
	catalog   *memory.MenuCatalog
	carts     *memory.CartStore
	checkouts *memory.CheckoutStore
	cartID    kernel.UUID
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()
	catalog, err := memory.NewSeededMenuCatalog()
	require.NoError(t, err)

	env := &cartEnv{
		catalog:   catalog,
		carts:     memory.NewCartStore(),
		checkouts: memory.NewCheckoutStore(),
		cartID:    kernel.NewUUID(),
	}
	cmd, err := commands.NewCreateCartCommand(env.cartID)
	require.NoError(t, err)
	handler := commands.NewCreateCartCommandHandler(env.carts, env.checkouts)
	require.NoError(t, handler.Handle(t.Context(), cmd))
	return env
}

func (e *cartEnv) addHandler(carts ports.CartRepository) commands.AddCartItemCommandHandler {
	notifier := &MockCartNotifier{}
	notifier.On("NotifyCartChanged", mock.Anything, mock.Anything).Maybe()
	return commands.NewAddCartItemCommandHandler(e.catalog, services.NewCustomizationResolver(), carts, notifier)
}

func (e *cartEnv) add(t *testing.T, handler commands.AddCartItemCommandHandler, dishID string, quantity int) {
	t.Helper()
	cmd, err := commands.NewAddCartItemCommand(e.cartID, dishID, quantity, menu.Selections{})
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func TestAddCartItem_RacingWriteIsRetried(t *testing.T) {
	env := newCartEnv(t)
	direct := env.addHandler(env.carts)

	racing := &interleavingCartStore{CartStore: env.carts}
	racing.beforeWrite = func() { env.add(t, direct, "d2", 1) }

	env.add(t, env.addHandler(racing), "d1", 1)

	stored, err := env.carts.Get(t.Context(), env.cartID)
	require.NoError(t, err)
	assert.Len(t, stored.Snapshot(), 2)
	assert.Equal(t, 2, stored.ItemCount())
	assert.Equal(t, uint64(2), stored.Version())
}

func TestAddCartItem_ConcurrentAddsKeepEveryAcknowledgedUnit(t *testing.T) {
	env := newCartEnv(t)
	handler := env.addHandler(env.carts)

	const writers = 16
	results := make(chan error, writers)
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewAddCartItemCommand(env.cartID, "d1", 1, menu.Selections{})
			_, err := handler.Handle(context.Background(), cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	acknowledged := 0
	for err := range results {
		if err == nil {
			acknowledged++
			continue
		}
		require.ErrorIs(t, err, commands.ErrCartChanged)
	}

	stored, err := env.carts.Get(t.Context(), env.cartID)
	require.NoError(t, err)
	assert.Positive(t, acknowledged)
	assert.Equal(t, acknowledged, stored.ItemCount())
	assert.Equal(t, uint64(acknowledged), stored.Version())
}

func TestSubmitCheckout_ItemAddedWhilePlacingStaysInCart(t *testing.T) {
	ctx := t.Context()
	env := newCartEnv(t)
	adder := env.addHandler(env.carts)
	env.add(t, adder, "d1", 1)

	validator := newFormValidator(t)
	w, err := env.checkouts.Get(ctx, env.cartID)
	require.NoError(t, err)
	require.NoError(t, w.Edit(reviewForm(true)))
	require.NoError(t, w.Next(validator))
	require.NoError(t, w.Next(validator))
	require.NoError(t, env.checkouts.Update(ctx, w))

	var placed *tracking.Tracking
	uow := &MockTrackingUoW{}
	repo := &MockTrackingRepository{}
	factory := &MockTrackingUoWFactory{}
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("TrackingRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		placed = args.Get(1).(*tracking.Tracking)
	}).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	notifier := &MockCartNotifier{}
	notifier.On("NotifyCartChanged", mock.Anything, mock.Anything).Maybe()

	breaker := interleavingBreaker{during: func(context.Context) { env.add(t, adder, "d4", 3) }}
	handler := commands.NewSubmitCheckoutCommandHandler(
		env.carts, env.checkouts, validator, factory, breaker, testPolicy(),
		clock.NewManual(testNow), notifier, slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	cmd, _ := commands.NewSubmitCheckoutCommand(env.cartID)
	_, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, placed)
	require.Len(t, placed.Items(), 1)
	assert.Equal(t, "Crispy Calamari Rings", placed.Items()[0].Name)
	assert.Equal(t, 1, placed.Items()[0].Quantity)

	stored, err := env.carts.Get(ctx, env.cartID)
	require.NoError(t, err)
	require.Len(t, stored.Snapshot(), 1)
	assert.Equal(t, "d4", stored.Snapshot()[0].DishID())
	assert.Equal(t, 3, stored.ItemCount())

	submitted, err := env.checkouts.Get(ctx, env.cartID)
	require.NoError(t, err)
	assert.Equal(t, checkout.Succeeded, submitted.Submission())
}

func TestSubmitCheckout_UntouchedCartIsCleared(t *testing.T) {
	ctx := t.Context()
	env := newCartEnv(t)
	env.add(t, env.addHandler(env.carts), "d6", 2)

	validator := newFormValidator(t)
	w, err := env.checkouts.Get(ctx, env.cartID)
	require.NoError(t, err)
	require.NoError(t, w.Edit(reviewForm(true)))
	require.NoError(t, w.Next(validator))
	require.NoError(t, w.Next(validator))
	require.NoError(t, env.checkouts.Update(ctx, w))

	uow := &MockTrackingUoW{}
	repo := &MockTrackingRepository{}
	factory := &MockTrackingUoWFactory{}
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("TrackingRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	notifier := &MockCartNotifier{}
	notifier.On("NotifyCartChanged", mock.Anything, mock.MatchedBy(func(ch ports.CartChanged) bool {
		return ch.CartID.IsEqual(env.cartID) && ch.ItemCount == 0
	})).Once()

	handler := commands.NewSubmitCheckoutCommandHandler(
		env.carts, env.checkouts, validator, factory, passthroughBreaker{}, testPolicy(),
		clock.NewManual(testNow), notifier, slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	cmd, _ := commands.NewSubmitCheckoutCommand(env.cartID)
	_, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	stored, err := env.carts.Get(ctx, env.cartID)
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
	notifier.AssertExpectations(t)
}
