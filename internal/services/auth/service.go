package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type service struct {
	users repositories.UserRepository
	log   *zap.Logger
}

func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{
		users: users,
		log:   logger.Get().Named("auth"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	v := validation.New()
	v.Required("name", req.Name)
	v.MaxLength("name", req.Name, validation.MaxNameLength)
	v.Email("email", req.Email)
	v.Password("password", req.Password)
	v.UserType("userType", req.UserType)
	if req.Phone != "" {
		v.Phone("phone", req.Phone)
	}
	if req.Pincode != "" {
		v.Pincode("pincode", req.Pincode)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerrors.ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		UserType:     req.UserType,
		Pincode:      req.Pincode,
		IsActive:     true,
		TokenVersion: 1,
	}

	err = s.users.ExecuteInTransaction(func(tx repositories.UserRepository) error {
		if err := tx.Create(user); err != nil {
			return err
		}
		if user.IsCustomer() {
			return tx.CreateProfile(&models.CustomerProfile{
				UserID:           user.ID,
				PreferredPincode: req.Pincode,
			})
		}
		return nil
	})
	if err != nil {
		// Two registrations racing on one email both pass the
		// EmailExists check; the unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrEmailTaken
		}
		return nil, err
	}

	access, refresh, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("user_type", user.UserType),
	)
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		// Unknown email reads the same as a wrong password.
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrForbidden.WithMessage("account is disabled")
	}

	access, refresh, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WithMessage("invalid refresh token")
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, domainerrors.ErrUnauthorized.WithMessage("token has been revoked")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrForbidden.WithMessage("account is disabled")
	}

	access, refresh, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.IncrementTokenVersion(userID); err != nil {
		return err
	}
	s.log.Info("user logged out", zap.String("user_id", userID.String()))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, oldPassword) {
		return domainerrors.ErrInvalidCredentials.WithMessage("current password is incorrect")
	}

	v := validation.New()
	v.Password("newPassword", newPassword)
	if err := v.Err(); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Outstanding tokens die with the old password.
	err = s.users.ExecuteInTransaction(func(tx repositories.UserRepository) error {
		if err := tx.UpdatePassword(userID, hash); err != nil {
			return err
		}
		return tx.IncrementTokenVersion(userID)
	})
	if err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		UserType:     user.UserType,
		TokenVersion: user.TokenVersion,
	}
}
