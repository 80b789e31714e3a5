// Package http exposes the storefront use cases as a JSON API on echo.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/adapters/in/ws"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/resilience"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Subscriber upgrades a request to a WebSocket subscription.
type Subscriber interface {
	Serve(w http.ResponseWriter, r *http.Request, channel ws.Channel, id kernel.UUID) error
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h          Handlers
	subscriber Subscriber
	logger     *slog.Logger
}

// NewServer creates a server over the given use case handlers.
func NewServer(handlers Handlers, subscriber Subscriber, logger *slog.Logger) *Server {
	return &Server{
		h:          handlers,
		subscriber: subscriber,
		logger:     logger.With("component", "http"),
	}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(metricsMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/menu", s.GetMenu)

	api.POST("/carts", s.CreateCart)
	api.GET("/carts/:cartId", s.GetCart)
	api.POST("/carts/:cartId/items", s.AddCartItem)
	api.PATCH("/carts/:cartId/items/:itemId", s.SetCartItemQuantity)
	api.DELETE("/carts/:cartId/items/:itemId", s.RemoveCartItem)

	api.GET("/carts/:cartId/checkout", s.GetCheckout)
	api.PUT("/carts/:cartId/checkout/form", s.EditCheckoutForm)
	api.POST("/carts/:cartId/checkout/next", s.NextCheckoutStep)
	api.POST("/carts/:cartId/checkout/back", s.PreviousCheckoutStep)
	api.POST("/carts/:cartId/checkout/submit", s.SubmitCheckout)

	api.GET("/orders/:orderId/tracking", s.GetOrderTracking)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)

	e.GET("/ws/carts/:cartId", s.SubscribeCart)
	e.GET("/ws/orders/:orderId", s.SubscribeOrder)
}

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(c echo.Context) error {
	dishes, err := s.h.Menu.ListDishes(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toMenu(dishes))
}

// CreateCart handles POST /api/v1/carts.
func (s *Server) CreateCart(c echo.Context) error {
	cartID := kernel.NewUUID()
	cmd, err := commands.NewCreateCartCommand(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.CreateCart.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, createCartResponse{CartID: cartID.String()})
}

// GetCart handles GET /api/v1/carts/:cartId.
func (s *Server) GetCart(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	query, err := queries.NewGetCartQuery(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(resp))
}

// AddCartItem handles POST /api/v1/carts/:cartId/items. A missing quantity
// means one.
func (s *Server) AddCartItem(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	var req addCartItemRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cmd, err := commands.NewAddCartItemCommand(cartID, req.DishID, quantity, menu.Selections(req.Selections))
	if err != nil {
		return s.writeError(c, err)
	}
	if _, err = s.h.AddCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCart(c, cartID, http.StatusCreated)
}

// SetCartItemQuantity handles PATCH /api/v1/carts/:cartId/items/:itemId.
func (s *Server) SetCartItemQuantity(c echo.Context) error {
	cartID, itemID, err := cartAndItemIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req setQuantityRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetCartItemQuantityCommand(cartID, itemID, req.Quantity)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.SetCartItemQuantity.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCart(c, cartID, http.StatusOK)
}

// RemoveCartItem handles DELETE /api/v1/carts/:cartId/items/:itemId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	cartID, itemID, err := cartAndItemIDs(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewRemoveCartItemCommand(cartID, itemID)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.RemoveCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCart(c, cartID, http.StatusOK)
}

// GetCheckout handles GET /api/v1/carts/:cartId/checkout.
func (s *Server) GetCheckout(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	return s.respondWithCheckout(c, cartID)
}

// EditCheckoutForm handles PUT /api/v1/carts/:cartId/checkout/form.
func (s *Server) EditCheckoutForm(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	var form checkout.Form
	if err = c.Bind(&form); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewEditCheckoutFormCommand(cartID, form)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.EditCheckoutForm.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCheckout(c, cartID)
}

// NextCheckoutStep handles POST /api/v1/carts/:cartId/checkout/next.
func (s *Server) NextCheckoutStep(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	cmd, err := commands.NewNextCheckoutStepCommand(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.NextCheckoutStep.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCheckout(c, cartID)
}

// PreviousCheckoutStep handles POST /api/v1/carts/:cartId/checkout/back.
func (s *Server) PreviousCheckoutStep(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	cmd, err := commands.NewPreviousCheckoutStepCommand(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.PreviousCheckoutStep.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return s.respondWithCheckout(c, cartID)
}

// SubmitCheckout handles POST /api/v1/carts/:cartId/checkout/submit. A failed
// placement answers 503; the checkout can be submitted again.
func (s *Server) SubmitCheckout(c echo.Context) error {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	cmd, err := commands.NewSubmitCheckoutCommand(cartID)
	if err != nil {
		return s.writeError(c, err)
	}

	orderID, err := s.h.SubmitCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		if isMappedError(err) {
			return s.writeError(c, err)
		}
		s.logger.WarnContext(c.Request().Context(), "Submit failed", "cartId", cartID.String(), "error", err)
		return c.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: commands.SubmitFailedMessage,
		})
	}
	return c.JSON(http.StatusCreated, submitCheckoutResponse{OrderID: orderID.String()})
}

// GetOrderTracking handles GET /api/v1/orders/:orderId/tracking. Unknown
// orders answer 404; storage failures answer 503 and may be retried.
func (s *Server) GetOrderTracking(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		if isMappedError(err) {
			return s.writeError(c, err)
		}
		s.logger.WarnContext(c.Request().Context(), "Tracking lookup failed", "orderId", orderID.String(), "error", err)
		return c.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Order status is temporarily unavailable. Please try again.",
		})
	}
	return c.JSON(http.StatusOK, toTrackingResponse(resp))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	var req cancelOrderRequest
	if c.Request().ContentLength > 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SubscribeCart handles GET /ws/carts/:cartId.
func (s *Server) SubscribeCart(c echo.Context) error {
	return s.subscribe(c, "cartId", ws.CartChannel)
}

// SubscribeOrder handles GET /ws/orders/:orderId.
func (s *Server) SubscribeOrder(c echo.Context) error {
	return s.subscribe(c, "orderId", ws.OrderChannel)
}

// subscribe upgrades only for carts and orders that exist.
func (s *Server) subscribe(c echo.Context, param string, channel ws.Channel) error {
	id, err := pathUUID(c, param)
	if err != nil {
		return badRequest(c, "Invalid "+string(channel)+" id")
	}
	if err = s.lookupSubscription(c.Request().Context(), channel, id); err != nil {
		if isMappedError(err) {
			return s.writeError(c, err)
		}
		s.logger.WarnContext(c.Request().Context(), "Subscription lookup failed",
			"channel", channel, "id", id.String(), "error", err)
		return c.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Live updates are temporarily unavailable. Please try again.",
		})
	}
	if err = s.subscriber.Serve(c.Response(), c.Request(), channel, id); err != nil {
		s.logger.WarnContext(c.Request().Context(), "WebSocket upgrade failed", "channel", channel, "error", err)
	}
	return nil
}

func (s *Server) lookupSubscription(ctx context.Context, channel ws.Channel, id kernel.UUID) error {
	switch channel {
	case ws.CartChannel:
		query, err := queries.NewGetCartQuery(id)
		if err != nil {
			return err
		}
		_, err = s.h.GetCart.Handle(ctx, query)
		return err
	case ws.OrderChannel:
		query, err := queries.NewGetOrderTrackingQuery(id)
		if err != nil {
			return err
		}
		_, err = s.h.GetOrderTracking.Handle(ctx, query)
		return err
	}
	return nil
}

func (s *Server) respondWithCart(c echo.Context, cartID kernel.UUID, status int) error {
	query, err := queries.NewGetCartQuery(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(status, toCartResponse(resp))
}

func (s *Server) respondWithCheckout(c echo.Context, cartID kernel.UUID) error {
	query, err := queries.NewGetCheckoutQuery(cartID)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetCheckout.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(resp))
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

func cartAndItemIDs(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	cartID, err := pathUUID(c, "cartId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid cart id")
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid item id")
	}
	return cartID, itemID, nil
}

// isMappedError reports errors writeError has a specific status for.
func isMappedError(err error) bool {
	var validationErr *errs.ValidationError
	return errors.As(err, &validationErr) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, checkout.ErrSubmitUnavailable) ||
		errors.Is(err, checkout.ErrWizardIsLocked) ||
		errors.Is(err, checkout.ErrNoNextStep) ||
		errors.Is(err, commands.ErrCartIsEmpty) ||
		errors.Is(err, commands.ErrCartChanged) ||
		errors.Is(err, tracking.ErrTrackingIsTerminal) ||
		errors.Is(err, ports.ErrTrackingChanged) ||
		errors.Is(err, resilience.ErrCircuitOpen)
}
