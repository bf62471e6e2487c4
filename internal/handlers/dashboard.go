package handlers

import (
	"github.com/gofiber/fiber/v2"

	"baartal/internal/services/dashboard"
	"baartal/internal/utils"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Customer returns the caller's balance, lifetime totals and recent
// activity.
func (h *DashboardHandler) Customer(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	d, err := h.dashboardService.CustomerDashboard(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, d)
}

// Business returns issuance and redemption totals for the caller's
// business.
func (h *DashboardHandler) Business(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	d, err := h.dashboardService.BusinessDashboard(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, d)
}
