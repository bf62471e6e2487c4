package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "baartal/internal/errors"
	"baartal/internal/models"
	"baartal/internal/repositories/cache"
)

type businessRepository struct {
	db    *gorm.DB
	cache *cache.Service
}

// NewBusinessRepository creates a BusinessRepository. cache may be nil.
func NewBusinessRepository(db *gorm.DB, cacheSvc *cache.Service) BusinessRepository {
	return &businessRepository{db: db, cache: cacheSvc}
}

func (r *businessRepository) Create(business *models.Business) error {
	if err := r.db.Create(business).Error; err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

func (r *businessRepository) GetByID(id uuid.UUID) (*models.Business, error) {
	if r.cache != nil {
		if business, ok := r.cache.GetBusiness(context.Background(), id); ok {
			return business, nil
		}
	}

	var business models.Business
	if err := r.db.First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("get business: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.CacheBusiness(context.Background(), &business)
	}
	return &business, nil
}

func (r *businessRepository) GetByOwnerUserID(ownerID uuid.UUID) (*models.Business, error) {
	var business models.Business
	if err := r.db.Where("owner_user_id = ?", ownerID).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("get business by owner: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(business *models.Business) error {
	if err := r.db.Save(business).Error; err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if r.cache != nil {
		_ = r.cache.InvalidateBusiness(context.Background(), business.ID)
	}
	return nil
}

func (r *businessRepository) List(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Business{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Pincode != "" {
		q = q.Where("pincode = ?", filter.Pincode)
	}
	if filter.BundleID != nil {
		q = q.Where("bundle_id = ?", *filter.BundleID)
	}
	if filter.OnlyActive {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count businesses: %w", err)
	}

	var businesses []models.Business
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&businesses).Error; err != nil {
		return nil, 0, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, total, nil
}

func (r *businessRepository) FindActiveCategoryClash(category, pincode string, excludeID uuid.UUID) (*models.Business, error) {
	q := r.db.Where("category = ? AND pincode = ? AND is_active = ?", category, pincode, true)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var business models.Business
	if err := q.First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("check category slot: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetOrCreateBundleForUpdate(pincode string) (*models.Bundle, error) {
	bundle := models.Bundle{
		Name:    "Baartal " + pincode,
		Pincode: pincode,
	}
	// ON CONFLICT DO NOTHING keeps concurrent first registrations from
	// racing the insert; the unique index on pincode is the arbiter.
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pincode"}},
		DoNothing: true,
	}).Create(&bundle).Error
	if err != nil {
		return nil, fmt.Errorf("ensure bundle: %w", err)
	}

	var locked models.Bundle
	err = r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pincode = ?", pincode).
		First(&locked).Error
	if err != nil {
		return nil, fmt.Errorf("lock bundle: %w", err)
	}
	return &locked, nil
}

func (r *businessRepository) CreateQRCode(qr *models.QRCode) error {
	if err := r.db.Create(qr).Error; err != nil {
		return fmt.Errorf("create qr code: %w", err)
	}
	return nil
}

func (r *businessRepository) ExecuteInTransaction(fn func(BusinessRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&businessRepository{db: tx, cache: r.cache})
	})
}
