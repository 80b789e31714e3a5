package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/resilience"

	"github.com/labstack/echo/v4"
)

// writeError maps use case errors to status codes. Unknown errors are logged
// and reported as 500 without details.
//
// A refused submit is a conflict even when a field blocks it; the blocking
// field is still reported.
func (s *Server) writeError(c echo.Context, err error) error {
	var validationErr *errs.ValidationError
	switch {
	case errors.Is(err, checkout.ErrSubmitUnavailable):
		body := Error{Code: http.StatusConflict, Message: err.Error()}
		if errors.As(err, &validationErr) {
			body.Message = validationErr.Message
			body.Field = validationErr.Field
		}
		return c.JSON(http.StatusConflict, body)

	case errors.As(err, &validationErr):
		return c.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})

	case errors.Is(err, checkout.ErrWizardIsLocked),
		errors.Is(err, checkout.ErrNoNextStep),
		errors.Is(err, tracking.ErrTrackingIsTerminal),
		errors.Is(err, ports.ErrTrackingChanged),
		errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, commands.ErrCartChanged):
		return c.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()})

	case errors.Is(err, resilience.ErrCircuitOpen):
		return c.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: commands.SubmitFailedMessage,
		})
	}

	s.logger.ErrorContext(c.Request().Context(), "Request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
