package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
)

// BundleRepository serves the read side of bundles. Bundle creation
// happens inside business registration transactions.
type BundleRepository interface {
	List(ctx context.Context, onlyActive bool) ([]models.Bundle, error)
	GetByPincode(pincode string) (*models.Bundle, error)
}

type bundleRepository struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepository{db: db}
}

func (r *bundleRepository) List(ctx context.Context, onlyActive bool) ([]models.Bundle, error) {
	q := r.db.WithContext(ctx).Preload("Businesses", "is_active = ?", true)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var bundles []models.Bundle
	if err := q.Order("pincode").Find(&bundles).Error; err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	return bundles, nil
}

func (r *bundleRepository) GetByPincode(pincode string) (*models.Bundle, error) {
	var bundle models.Bundle
	err := r.db.Preload("Businesses", "is_active = ?", true).
		Where("pincode = ?", pincode).
		First(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBundleNotFound
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}
	return &bundle, nil
}
