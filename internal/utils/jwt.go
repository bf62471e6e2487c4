package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"baartal/internal/config"
	"baartal/internal/models"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenIssuer = "baartal-api"
)

// GenerateTokens signs an access/refresh token pair for the user.
// JWT_SECRET must be set in the environment.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	accessToken, err = signToken(claims, now, AccessTokenTTL, secret)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = signToken(claims, now, RefreshTokenTTL, secret)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func signToken(claims *models.UserClaims, now time.Time, ttl time.Duration, secret string) (string, error) {
	c := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   claims.UserID.String(),
		},
		UserID:       claims.UserID,
		Email:        claims.Email,
		UserType:     claims.UserType,
		TokenVersion: claims.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
