package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"baartal/internal/config"
	"baartal/internal/services/auth"
	"baartal/internal/utils"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a user account and signs in the new user.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		UserType string `json:"userType"`
		Pincode  string `json:"pincode"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	res, err := h.authService.Register(c.Context(), auth.RegisterRequest{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		UserType: input.UserType,
		Pincode:  input.Pincode,
	})
	if err != nil {
		return utils.Error(c, err)
	}

	h.setAuthCookies(c, res.AccessToken, res.RefreshToken)
	return utils.Created(c, res)
}

// Login verifies credentials and returns a token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	res, err := h.authService.Login(c.Context(), auth.LoginRequest{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return utils.Error(c, err)
	}

	h.setAuthCookies(c, res.AccessToken, res.RefreshToken)
	return utils.Success(c, res)
}

// Refresh rotates the token pair. The refresh token is read from the
// cookie first, then from the body.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}
	if refreshToken == "" {
		return utils.Unauthorized(c, "refresh token not provided")
	}

	pair, err := h.authService.RefreshTokens(c.Context(), refreshToken)
	if err != nil {
		return utils.Error(c, err)
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	return utils.Success(c, pair)
}

// Logout revokes every outstanding token for the caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.authService.Logout(c.Context(), claims.UserID); err != nil {
		return utils.Error(c, err)
	}

	h.clearAuthCookies(c)
	return utils.Success(c, fiber.Map{"message": "logged out"})
}

// ChangePassword rotates the caller's password and revokes old tokens.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "authentication required")
	}

	if err := h.authService.ChangePassword(c.Context(), claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		return utils.Error(c, err)
	}

	h.clearAuthCookies(c)
	return utils.Success(c, fiber.Map{"message": "password changed"})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.AccessTokenTTL.Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   int(utils.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     "/",
		})
	}
}
