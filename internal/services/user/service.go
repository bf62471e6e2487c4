package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "baartal/internal/errors"
	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/validation"
)

// Account is the resolved identity behind a bearer token: the user
// plus whichever side it has, a coin profile or a business.
type Account struct {
	User     *models.User            `json:"user"`
	Profile  *models.CustomerProfile `json:"profile,omitempty"`
	Business *models.Business        `json:"business,omitempty"`
}

// UpdateRequest is a partial account update; nil fields are left
// untouched.
type UpdateRequest struct {
	Name    *string
	Phone   *string
	Pincode *string
}

type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateRequest) (*models.User, error)

	AddFavorite(ctx context.Context, userID, businessID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, businessID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Business, error)
}

type service struct {
	users      repositories.UserRepository
	profiles   repositories.CustomerProfileRepository
	businesses repositories.BusinessRepository
	log        *zap.Logger
}

func NewService(
	users repositories.UserRepository,
	profiles repositories.CustomerProfileRepository,
	businesses repositories.BusinessRepository,
) Service {
	if users == nil {
		panic("user repository is required")
	}
	if profiles == nil {
		panic("customer profile repository is required")
	}
	if businesses == nil {
		panic("business repository is required")
	}
	return &service{
		users:      users,
		profiles:   profiles,
		businesses: businesses,
		log:        logger.Get().Named("user"),
	}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}

	account := &Account{User: user}
	switch {
	case user.IsCustomer():
		profile, err := s.profiles.GetByUserID(id)
		if err != nil {
			return nil, err
		}
		account.Profile = profile
	case user.IsBusiness():
		// A business account exists before its business is
		// registered.
		b, err := s.businesses.GetByOwnerUserID(id)
		if err != nil && !errors.Is(err, domainerrors.ErrBusinessNotFound) {
			return nil, err
		}
		account.Business = b
	}
	return account, nil
}

func (s *service) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateRequest) (*models.User, error) {
	v := validation.New()
	if req.Name != nil {
		v.Required("name", *req.Name)
		v.MaxLength("name", *req.Name, validation.MaxNameLength)
	}
	if req.Phone != nil && *req.Phone != "" {
		v.Phone("phone", *req.Phone)
	}
	if req.Pincode != nil && *req.Pincode != "" {
		v.Pincode("pincode", *req.Pincode)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Pincode != nil {
		user.Pincode = *req.Pincode
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	if req.Pincode != nil && user.IsCustomer() {
		profile, err := s.profiles.GetByUserID(id)
		if err != nil {
			return nil, err
		}
		profile.PreferredPincode = *req.Pincode
		if err := s.profiles.Update(profile); err != nil {
			return nil, err
		}
	}

	s.log.Info("account updated", zap.String("user_id", id.String()))
	return user, nil
}

func (s *service) AddFavorite(ctx context.Context, userID, businessID uuid.UUID) error {
	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return err
	}
	business, err := s.businesses.GetByID(businessID)
	if err != nil {
		return err
	}
	if !business.IsActive {
		return domainerrors.ErrBusinessInactive
	}
	return s.profiles.AddFavorite(profile.ID, business.ID)
}

func (s *service) RemoveFavorite(ctx context.Context, userID, businessID uuid.UUID) error {
	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return err
	}
	return s.profiles.RemoveFavorite(profile.ID, businessID)
}

func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Business, error) {
	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.profiles.ListFavorites(ctx, profile.ID)
}
