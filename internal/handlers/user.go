package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baartal/internal/services/user"
	"baartal/internal/utils"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe resolves the bearer token to the caller's account.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	account, err := h.userService.GetAccount(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, account)
}

// UpdateMe applies a partial update to the caller's account.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var input struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Pincode *string `json:"pincode"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	updated, err := h.userService.UpdateAccount(c.Context(), claims.UserID, user.UpdateRequest{
		Name:    input.Name,
		Phone:   input.Phone,
		Pincode: input.Pincode,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, updated)
}

// ListFavorites returns the caller's favorite businesses.
func (h *UserHandler) ListFavorites(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	favorites, err := h.userService.ListFavorites(c.Context(), claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"favorites": favorites})
}

// AddFavorite marks a business as a favorite.
func (h *UserHandler) AddFavorite(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}

	if err := h.userService.AddFavorite(c.Context(), claims.UserID, businessID); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "favorite added"})
}

// RemoveFavorite unmarks a favorite business.
func (h *UserHandler) RemoveFavorite(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	businessID, err := uuid.Parse(c.Params("businessId"))
	if err != nil {
		return utils.BadRequest(c, "invalid business id")
	}

	if err := h.userService.RemoveFavorite(c.Context(), claims.UserID, businessID); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "favorite removed"})
}
