package rest

import (
	"errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

const processingFailedMessage = "An error occurred while processing the image."

// ErrorHandler answers every failure with a plain text body: 400 for missing
// parameters, the status of a *fiber.Error, and 500 for everything else.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := fiber.StatusInternalServerError, processingFailedMessage

		var fe *fiber.Error
		switch {
		case errors.Is(err, errs.ErrMissingParameter):
			code, message = fiber.StatusBadRequest, missingParametersMessage
		case errors.As(err, &fe):
			code, message = fe.Code, fe.Message
		}

		l := log.LoggerWithTrace(c.UserContext(), logger).With(
			zap.Int("status", code),
			zap.String("path", c.Path()),
			zap.String("kind", errs.Kind(err)),
			zap.Error(err),
		)
		if code >= fiber.StatusInternalServerError {
			l.Error("Error processing image")
		} else {
			l.Debug("Request rejected")
		}

		c.Response().ResetBody()
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}
