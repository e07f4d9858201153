package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeops.GO/core/errs"
)

// ErrorResponse maps the core error taxonomy onto HTTP. State-machine and
// stock rejections are 409s with a machine-readable code, never 500s.
func ErrorResponse(c echo.Context, err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "code": "validation"})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found", "code": "not_found"})
	case errors.Is(err, errs.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "code": "out_of_stock"})
	case errors.Is(err, errs.ErrAlreadyReceived):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "code": "already_received"})
	case errors.Is(err, errs.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "code": "invalid_transition"})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "code": "conflict", "retryable": true})
	case errs.IsPersistence(err):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable", "code": "persistence", "retryable": true})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
