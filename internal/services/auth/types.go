package auth

import "baartal/internal/models"

// RegisterRequest creates a user account. Customer accounts get their
// CustomerProfile in the same transaction.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	UserType string
	Pincode  string
}

type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult is a user with a freshly signed token pair.
type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
