package rating

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"baartal/internal/logger"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/services/ledger"
	"baartal/internal/utils"
	"baartal/internal/validation"
)

// CreateRequest rates a business once per customer.
type CreateRequest struct {
	CustomerID uuid.UUID
	BusinessID uuid.UUID
	Stars      int
	Comment    string
}

// Service handles ratings. Creation runs through the ledger so the
// rating row and its bonus credit commit in one transaction.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ledger.RatingResult, error)
	GetByCustomerAndBusiness(ctx context.Context, customerID, businessID uuid.UUID) (*models.Rating, error)
	ListForBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.Rating, int64, error)
	StatsForBusiness(ctx context.Context, businessID uuid.UUID) (*repositories.RatingStats, error)
}

type service struct {
	repo   repositories.RatingRepository
	ledger ledger.Service
	log    *zap.Logger
}

func NewService(repo repositories.RatingRepository, ledgerSvc ledger.Service) Service {
	if repo == nil {
		panic("rating repository is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{
		repo:   repo,
		ledger: ledgerSvc,
		log:    logger.Get().Named("rating"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ledger.RatingResult, error) {
	v := validation.New()
	v.Stars("stars", req.Stars)
	v.MaxLength("comment", req.Comment, validation.MaxCommentLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	res, err := s.ledger.RatingBonus(ctx, ledger.RatingBonusRequest{
		CustomerID: req.CustomerID,
		BusinessID: req.BusinessID,
		Stars:      req.Stars,
		Comment:    req.Comment,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rating created",
		zap.String("business_id", req.BusinessID.String()),
		zap.Int("stars", req.Stars),
		zap.Float64("bonus", res.Rating.BonusAmount),
	)
	return res, nil
}

func (s *service) GetByCustomerAndBusiness(ctx context.Context, customerID, businessID uuid.UUID) (*models.Rating, error) {
	return s.repo.GetByCustomerAndBusiness(customerID, businessID)
}

func (s *service) ListForBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.Rating, int64, error) {
	if limit <= 0 {
		limit = utils.DefaultLimit
	}
	if limit > utils.MaxLimit {
		limit = utils.MaxLimit
	}
	return s.repo.ListByBusiness(ctx, businessID, limit, offset)
}

func (s *service) StatsForBusiness(ctx context.Context, businessID uuid.UUID) (*repositories.RatingStats, error) {
	return s.repo.StatsForBusiness(businessID)
}
