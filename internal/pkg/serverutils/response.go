package serverutils

import (
	"errors"

	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ErrorBody mirrors the {detail} shape the coach client parses
type ErrorBody struct {
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, detail string) ErrorBody {
	return ErrorBody{
		Code:   code,
		Detail: detail,
	}
}

const httpModule = "HTTPServer"

// NewErrorHandler builds the fiber.Config.ErrorHandler. Errors that carry no
// client-facing detail are logged and answered with a generic 500.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		detail := "An error occurred while processing your request. Please try again."

		var fiberErr *fiber.Error
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
			detail = validationErr.Message
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			detail = fiberErr.Message
		default:
			log.Error(httpModule, "Unhandled request error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, detail))
	}
}

// ErrorHandlerMiddleware converts handler errors to {detail} responses before
// the outer middleware (tracing, cors) sees them.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return handle(ctx, err)
	}
}
