// Package httpx maps the core error taxonomy to transport status codes. It is
// the only place where error kinds and HTTP meet.
package httpx

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bitvault/bitvault/internal/apperr"
)

// Error converts a core error into a fiber error with the right status code.
// Untyped errors are treated as internal faults.
func Error(err error) *fiber.Error {
	kind, ok := apperr.KindOf(err)
	if !ok {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	switch kind {
	case apperr.KindNotFound:
		return fiber.NewError(http.StatusNotFound, err.Error())
	case apperr.KindConflict, apperr.KindResourceExhausted:
		return fiber.NewError(http.StatusConflict, err.Error())
	case apperr.KindInvalidInput:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case apperr.KindUnauthorized:
		return fiber.NewError(http.StatusForbidden, err.Error())
	case apperr.KindUnavailable:
		return fiber.NewError(http.StatusServiceUnavailable, "storage unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

// RetryOnce re-runs fn a single time when it fails with a storage fault.
// Typed failures and second faults pass through unchanged.
func RetryOnce(fn func() error) error {
	err := fn()
	if err != nil && apperr.IsKind(err, apperr.KindUnavailable) {
		return fn()
	}
	return err
}
