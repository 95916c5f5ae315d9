package serverutils

import (
	"errors"

	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "internal server error"

// ErrorHandlerMiddleware renders errors returned by handlers. Known kinds map
// to their status code with their own message; anything else is logged and
// reported as a bare 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case apperror.IsNotFound(err):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(apperror.Message(err)))
		case apperror.IsValidation(err), apperror.IsInvalidState(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(apperror.Message(err)))
		case errors.As(err, &fiberErr):
			if fiberErr.Code >= fiber.StatusInternalServerError {
				break
			}
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled request error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(internalErrorMessage))
	}
}
