package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/in/ws"
	"storefront/internal/adapters/out/fanout"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/resilience"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger *slog.Logger

	carts     *memory.CartStore
	checkouts *memory.CheckoutStore
	catalog   *memory.MenuCatalog
	validator checkout.FormValidator
	clock     ports.Clock

	hub        *ws.Hub
	producer   *kafka.OrderEventProducer
	uowFactory *postgres.GormUnitOfWorkFactory
	breaker    *resilience.CircuitBreaker
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	catalog, err := memory.NewSeededMenuCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	validator, err := checkout.NewFormValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to build form validator: %w", err)
	}

	hub := ws.NewHub(cfg.CartNotifyDebounce, logger)
	producer := kafka.NewOrderEventProducer(kafka.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaOrderChangedTopic,
	}, logger)
	publisher := fanout.Publisher{producer, hub}

	breakerConfig := resilience.DefaultCircuitBreakerConfig("order-placement")
	breakerConfig.FailureThreshold = cfg.BreakerFailureThreshold
	breakerConfig.Timeout = cfg.BreakerTimeout
	breakerConfig.IsSuccessful = isPlacementHealthy

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		carts:      memory.NewCartStore(),
		checkouts:  memory.NewCheckoutStore(),
		catalog:    catalog,
		validator:  validator,
		clock:      clock.NewSystem(),
		hub:        hub,
		producer:   producer,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		breaker:    resilience.NewCircuitBreaker(breakerConfig, logger),
	}, nil
}

// isPlacementHealthy keeps domain rejections from tripping the breaker; only
// infrastructure failures count.
func isPlacementHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

// Hub returns the WebSocket hub; its Run loop is owned by the caller.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// Close releases the Kafka writer.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCartCommandHandler() commands.CreateCartCommandHandler {
	return commands.NewCreateCartCommandHandler(c.carts, c.checkouts)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.catalog, services.NewCustomizationResolver(), c.carts, c.hub)
}

func (c *CompositionRoot) CreateSetCartItemQuantityCommandHandler() commands.SetCartItemQuantityCommandHandler {
	return commands.NewSetCartItemQuantityCommandHandler(c.carts, c.hub)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.carts, c.hub)
}

func (c *CompositionRoot) CreateEditCheckoutFormCommandHandler() commands.EditCheckoutFormCommandHandler {
	return commands.NewEditCheckoutFormCommandHandler(c.checkouts)
}

func (c *CompositionRoot) CreateNextCheckoutStepCommandHandler() commands.NextCheckoutStepCommandHandler {
	return commands.NewNextCheckoutStepCommandHandler(c.checkouts, c.validator)
}

func (c *CompositionRoot) CreatePreviousCheckoutStepCommandHandler() commands.PreviousCheckoutStepCommandHandler {
	return commands.NewPreviousCheckoutStepCommandHandler(c.checkouts)
}

func (c *CompositionRoot) CreateSubmitCheckoutCommandHandler() commands.SubmitCheckoutCommandHandler {
	return commands.NewSubmitCheckoutCommandHandler(
		c.carts, c.checkouts, c.validator, c.trackingUoWFactory(), c.breaker,
		c.cfg.Pricing, c.clock, c.hub, c.logger,
	)
}

func (c *CompositionRoot) CreateAdvanceTrackingsCommandHandler() commands.AdvanceTrackingsCommandHandler {
	return commands.NewAdvanceTrackingsCommandHandler(c.trackingUoWFactory(), c.clock, c.cfg.TrackingAdvanceInterval)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.trackingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.carts, c.cfg.Pricing)
}

func (c *CompositionRoot) CreateGetCheckoutQueryHandler() queries.GetCheckoutQueryHandler {
	return queries.NewGetCheckoutQueryHandler(c.carts, c.checkouts, c.validator, c.cfg.Pricing)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.cfg.TrackingAdvanceInterval)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createCart := c.CreateCreateCartCommandHandler()
	addItem := c.CreateAddCartItemCommandHandler()
	setQuantity := c.CreateSetCartItemQuantityCommandHandler()
	removeItem := c.CreateRemoveCartItemCommandHandler()
	editForm := c.CreateEditCheckoutFormCommandHandler()
	next := c.CreateNextCheckoutStepCommandHandler()
	previous := c.CreatePreviousCheckoutStepCommandHandler()
	submit := c.CreateSubmitCheckoutCommandHandler()
	cancel := c.CreateCancelOrderCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCart:           &createCart,
		AddCartItem:          &addItem,
		SetCartItemQuantity:  &setQuantity,
		RemoveCartItem:       &removeItem,
		EditCheckoutForm:     &editForm,
		NextCheckoutStep:     &next,
		PreviousCheckoutStep: &previous,
		SubmitCheckout:       &submit,
		CancelOrder:          &cancel,
		GetCart:              c.CreateGetCartQueryHandler(),
		GetCheckout:          c.CreateGetCheckoutQueryHandler(),
		GetOrderTracking:     c.CreateGetOrderTrackingQueryHandler(),
		Menu:                 c.catalog,
	}, c.hub, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	advance := c.CreateAdvanceTrackingsCommandHandler()
	return jobs.NewJobManager(&advance, c.logger)
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
