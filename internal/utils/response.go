package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"baartal/internal/errors"
	"baartal/internal/logger"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a 200 JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// Error maps a service failure onto the wire. DomainErrors carry
// their own status and stable code; anything else becomes an opaque
// 500 so storage details never leak to clients.
func Error(c *fiber.Ctx, err error) error {
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		return Respond(c, de.Status, fiber.Map{"error": de.Message, "code": de.Code})
	}
	logger.Get().Error("unhandled error",
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{
		"error": "internal server error",
		"code":  "INTERNAL_ERROR",
	})
}

// ValidationFailed sends the field-level messages of a failed
// validation pass.
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{
		"error":  "validation failed",
		"code":   "VALIDATION_ERROR",
		"fields": fields,
	})
}

// BadRequest sends a 400 with a VALIDATION_ERROR code.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message, "code": "VALIDATION_ERROR"})
}

// Unauthorized sends a 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message, "code": "UNAUTHORIZED"})
}

// Forbidden sends a 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message, "code": "FORBIDDEN"})
}

// NotFound sends a 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message, "code": "NOT_FOUND"})
}
