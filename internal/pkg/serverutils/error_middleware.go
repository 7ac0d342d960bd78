package serverutils

import (
	"errors"
	"strings"

	"care-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses and the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, store.ErrSessionNotFound),
			errors.Is(err, store.ErrIdentityNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, store.ErrInvalidUtterance),
			errors.Is(err, store.ErrIdentityAmbiguous),
			errors.Is(err, store.ErrDimensionMismatch):
			code = fiber.StatusBadRequest
		case errors.Is(err, store.ErrExternalService):
			code = fiber.StatusBadGateway
		case strings.Contains(message, "validation failed"):
			code = fiber.StatusBadRequest
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
