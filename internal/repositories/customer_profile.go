package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
)

// CustomerProfileRepository reads customer profiles and manages the
// favorites association. Balance fields are written only by the
// ledger repository under its row lock.
type CustomerProfileRepository interface {
	GetByUserID(userID uuid.UUID) (*models.CustomerProfile, error)
	Update(profile *models.CustomerProfile) error

	AddFavorite(profileID, businessID uuid.UUID) error
	RemoveFavorite(profileID, businessID uuid.UUID) error
	ListFavorites(ctx context.Context, profileID uuid.UUID) ([]models.Business, error)
}

type customerProfileRepository struct {
	db *gorm.DB
}

func NewCustomerProfileRepository(db *gorm.DB) CustomerProfileRepository {
	return &customerProfileRepository{db: db}
}

func (r *customerProfileRepository) GetByUserID(userID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get customer profile: %w", err)
	}
	return &profile, nil
}

func (r *customerProfileRepository) Update(profile *models.CustomerProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("update customer profile: %w", err)
	}
	return nil
}

func (r *customerProfileRepository) AddFavorite(profileID, businessID uuid.UUID) error {
	profile := models.CustomerProfile{BaseModel: models.BaseModel{ID: profileID}}
	business := models.Business{BaseModel: models.BaseModel{ID: businessID}}
	err := r.db.Model(&profile).Association("FavoriteBusinesses").Append(&business)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *customerProfileRepository) RemoveFavorite(profileID, businessID uuid.UUID) error {
	profile := models.CustomerProfile{BaseModel: models.BaseModel{ID: profileID}}
	business := models.Business{BaseModel: models.BaseModel{ID: businessID}}
	err := r.db.Model(&profile).Association("FavoriteBusinesses").Delete(&business)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *customerProfileRepository) ListFavorites(ctx context.Context, profileID uuid.UUID) ([]models.Business, error) {
	profile := models.CustomerProfile{BaseModel: models.BaseModel{ID: profileID}}
	var businesses []models.Business
	err := r.db.WithContext(ctx).Model(&profile).Association("FavoriteBusinesses").Find(&businesses)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return businesses, nil
}
