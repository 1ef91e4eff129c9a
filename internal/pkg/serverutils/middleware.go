package serverutils

import (
	"errors"

	"albi-mall-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned by downstream handlers.
// AppErrors keep their status and code; anything else becomes a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			res := ErrorResponse(appErr.Status, appErr.Message)
			res.ErrorCode = appErr.Code
			res.Details = appErr.Details
			return ctx.Status(appErr.Status).JSON(res)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err,
		})
		res := ErrorResponse(fiber.StatusInternalServerError, "Something went wrong. Please try again.")
		res.ErrorCode = CodeInternal
		return ctx.Status(fiber.StatusInternalServerError).JSON(res)
	}
}
