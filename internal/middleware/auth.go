// Package middleware provides the fiber middleware for request
// authentication and role gating.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
)

// AuthMiddleware validates bearer tokens. A token is accepted only if
// its signature verifies, it has not expired, and its version matches
// the user's current TokenVersion, so logout and password changes
// revoke it immediately.
type AuthMiddleware struct {
	users repositories.UserRepository
}

func NewAuthMiddleware(users repositories.UserRepository) *AuthMiddleware {
	if users == nil {
		panic("user repository is required")
	}
	return &AuthMiddleware{users: users}
}

// Handler authenticates the request and stores the claims under
// c.Locals("claims").
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return utils.Unauthorized(c, "authorization header must be a bearer token")
	}

	claims, err := utils.ParseToken(tokenStr)
	if err != nil {
		return utils.Unauthorized(c, "invalid or expired token")
	}

	user, err := m.users.GetByID(claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "invalid or expired token")
	}
	if user.TokenVersion != claims.TokenVersion {
		return utils.Unauthorized(c, "session expired")
	}
	if !user.IsActive {
		return utils.Forbidden(c, "account is disabled")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// RequireUserType gates a route to the given account types. Admins
// pass every gate.
func RequireUserType(types ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "authentication required")
		}
		if claims.UserType == models.UserTypeAdmin {
			return c.Next()
		}
		for _, t := range types {
			if claims.UserType == t {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "not allowed for this account type")
	}
}
