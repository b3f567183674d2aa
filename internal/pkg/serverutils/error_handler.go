package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusMapper lets domain packages map their sentinel errors to HTTP codes
// without serverutils importing them.
type StatusMapper func(err error) (int, bool)

// ErrorHandlerMiddleware turns errors returned by handlers into the error
// envelope. Unknown errors become 500.
func ErrorHandlerMiddleware(mappers ...StatusMapper) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponseWithData(fiber.StatusBadRequest, verr.Error(), verr.Fields))
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
		}

		for _, mapper := range mappers {
			if code, ok := mapper(err); ok {
				return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
			}
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
