package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/repositories"
	"baartal/internal/services/business"
	"baartal/internal/utils"
)

type BusinessHandler struct {
	businessService business.Service
}

func NewBusinessHandler(businessService business.Service) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Create registers the caller's business and mints its first QR code.
func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	var input struct {
		BusinessName string   `json:"businessName"`
		Category     string   `json:"category"`
		Pincode      string   `json:"pincode"`
		Address      string   `json:"address"`
		Description  string   `json:"description"`
		BCoinRate    *float64 `json:"bCoinRate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	res, err := h.businessService.Register(c.Context(), business.RegisterRequest{
		OwnerUserID:  claims.UserID,
		BusinessName: input.BusinessName,
		Category:     input.Category,
		Pincode:      input.Pincode,
		Address:      input.Address,
		Description:  input.Description,
		BCoinRate:    input.BCoinRate,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, res)
}

// List returns businesses filtered by category and pincode.
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	p := utils.GetPagination(c)
	filter := repositories.BusinessFilter{
		Category:   c.Query("category"),
		Pincode:    c.Query("pincode"),
		OnlyActive: c.QueryBool("onlyActive", true),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}

	businesses, total, err := h.businessService.List(c.Context(), filter)
	if err != nil {
		return utils.Error(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(businesses, p))
}

// Get returns one business by id.
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}

	b, err := h.businessService.Get(c.Context(), id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, b)
}

// GetMine returns the caller's own business.
func (h *BusinessHandler) GetMine(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	b, err := h.businessService.GetByOwner(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, b)
}

// Update applies a partial update; category or pincode moves re-enter
// the exclusivity check.
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	var input struct {
		BusinessName *string  `json:"businessName"`
		Category     *string  `json:"category"`
		Pincode      *string  `json:"pincode"`
		Address      *string  `json:"address"`
		Description  *string  `json:"description"`
		BCoinRate    *float64 `json:"bCoinRate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	updated, err := h.businessService.Update(c.Context(), claims.UserID, id, business.UpdateRequest{
		BusinessName: input.BusinessName,
		Category:     input.Category,
		Pincode:      input.Pincode,
		Address:      input.Address,
		Description:  input.Description,
		BCoinRate:    input.BCoinRate,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, updated)
}

// Deactivate takes the caller's business offline and frees its
// category slot.
func (h *BusinessHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.businessService.Deactivate(c.Context(), claims.UserID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "business deactivated"})
}

// Reactivate brings a business back online if its slot is still free.
func (h *BusinessHandler) Reactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.businessService.Reactivate(c.Context(), claims.UserID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "business reactivated"})
}
