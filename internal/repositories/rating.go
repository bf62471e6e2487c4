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

// RatingStats aggregates a business's ratings.
type RatingStats struct {
	Average float64
	Count   int64
}

// RatingRepository serves rating reads. Creation runs through the
// ledger transaction so the bonus credit and the rating row commit
// together.
type RatingRepository interface {
	GetByCustomerAndBusiness(customerID, businessID uuid.UUID) (*models.Rating, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.Rating, int64, error)
	StatsForBusiness(businessID uuid.UUID) (*RatingStats, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByCustomerAndBusiness(customerID, businessID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("customer_id = ? AND business_id = ?", customerID, businessID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrRatingNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.Rating, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Rating{}).Where("business_id = ?", businessID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	var ratings []models.Rating
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ratings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, total, nil
}

func (r *ratingRepository) StatsForBusiness(businessID uuid.UUID) (*RatingStats, error) {
	var stats RatingStats
	err := r.db.Model(&models.Rating{}).
		Where("business_id = ?", businessID).
		Select("COALESCE(AVG(stars), 0) as average, COUNT(*) as count").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	return &stats, nil
}
