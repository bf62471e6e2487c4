package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/services/rating"
	"baartal/internal/utils"
)

type RatingHandler struct {
	ratingService rating.Service
}

func NewRatingHandler(ratingService rating.Service) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Create rates a business and credits the one-time bonus.
func (h *RatingHandler) Create(c *fiber.Ctx) error {
	var input struct {
		BusinessID string `json:"businessId"`
		Stars      int    `json:"stars"`
		Comment    string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	businessID, err := uuid.Parse(input.BusinessID)
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	res, err := h.ratingService.Create(c.Context(), rating.CreateRequest{
		CustomerID: claims.UserID,
		BusinessID: businessID,
		Stars:      input.Stars,
		Comment:    input.Comment,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, res)
}

// ListForBusiness returns a business's ratings with aggregates.
func (h *RatingHandler) ListForBusiness(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}

	p := utils.GetPagination(c)
	ratings, total, err := h.ratingService.ListForBusiness(c.Context(), businessID, p.Limit, p.Offset)
	if err != nil {
		return utils.Error(c, err)
	}

	stats, err := h.ratingService.StatsForBusiness(c.Context(), businessID)
	if err != nil {
		return utils.Error(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, fiber.Map{
		"ratings":       ratings,
		"averageRating": stats.Average,
		"ratingCount":   stats.Count,
		"pagination":    p,
	})
}
