package handlers

import (
	"github.com/gofiber/fiber/v2"

	"baartal/internal/repositories"
	"baartal/internal/utils"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness of the database and the cache.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbStatus := "up"
	if err := repositories.HealthCheck(c.Context()); err != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	cacheStatus := "up"
	if repositories.Cache == nil || repositories.Cache.HealthCheck(c.Context()) != nil {
		cacheStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return utils.Respond(c, status, fiber.Map{
		"status":   statusWord(status),
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}

func statusWord(status int) string {
	if status == fiber.StatusOK {
		return "ok"
	}
	return "degraded"
}
