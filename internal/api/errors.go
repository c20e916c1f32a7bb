package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/qolzam/telar/apps/reply-engine/internal/pkg/log"
	"github.com/qolzam/telar/apps/reply-engine/internal/reply"
)

// Messages returned to callers. Failure causes are never included.
const (
	MsgMissingRequiredData = "Missing required data: email, businessInfo, or tone"
	MsgInvalidPayload      = "Invalid request payload"
	MsgGenerationFailed    = "Failed to generate AI reply on the server."
)

// HandleServiceError maps a reply generation error to its HTTP response.
// Anything other than a validation failure is logged and reported as a 500.
func HandleServiceError(ctx context.Context, c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if reply.IsValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(reply.ErrorResponse{Error: MsgMissingRequiredData})
	}

	log.ErrorWithContext(ctx, "Error in %s endpoint: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(reply.ErrorResponse{Error: MsgGenerationFailed})
}

// ErrorHandler is the application-wide Fiber error handler. It keeps error
// bodies in the same {"error": ...} shape as the handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := MsgGenerationFailed

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.ErrorWithContext(c.UserContext(), "Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(reply.ErrorResponse{Error: message})
}
