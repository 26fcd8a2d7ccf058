package rest

import (
	"dimensify/api/model"
	"errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler answers every failure with a {"error": ...} body. Only input
// errors and fiber errors carry their own message; the rest are logged and
// reported generically.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if re, ok := model.AsRequestError(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: re.Error()})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(model.ErrorResponse{Error: fe.Message})
		}

		logger.Error("Error processing request", zap.String("path", c.Path()), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: model.ProcessingFailedMessage})
	}
}
