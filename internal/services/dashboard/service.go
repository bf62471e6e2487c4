package dashboard

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/services/ledger"
)

const (
	customerRecentLimit = 5
	businessRecentLimit = 10
)

// Service aggregates ledger positions into the dashboard payloads.
type Service interface {
	CustomerDashboard(ctx context.Context, userID uuid.UUID) (*models.CustomerDashboard, error)
	BusinessDashboard(ctx context.Context, ownerUserID uuid.UUID) (*models.BusinessDashboard, error)
}

type service struct {
	ledger     ledger.Service
	businesses repositories.BusinessRepository
	profiles   repositories.CustomerProfileRepository
	qrCodes    repositories.QRCodeRepository
	ratings    repositories.RatingRepository
}

func NewService(
	ledgerSvc ledger.Service,
	businesses repositories.BusinessRepository,
	profiles repositories.CustomerProfileRepository,
	qrCodes repositories.QRCodeRepository,
	ratings repositories.RatingRepository,
) Service {
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if businesses == nil || profiles == nil || qrCodes == nil || ratings == nil {
		panic("dashboard repositories are required")
	}
	return &service{
		ledger:     ledgerSvc,
		businesses: businesses,
		profiles:   profiles,
		qrCodes:    qrCodes,
		ratings:    ratings,
	}
}

func (s *service) CustomerDashboard(ctx context.Context, userID uuid.UUID) (*models.CustomerDashboard, error) {
	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.ledger.GetCustomerTransactions(ctx, userID, customerRecentLimit, 0)
	if err != nil {
		return nil, err
	}

	favorites, err := s.profiles.ListFavorites(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &models.CustomerDashboard{
		BCoinBalance:       profile.BCoinBalance,
		TotalBCoinsEarned:  profile.TotalBCoinsEarned,
		TotalBCoinsSpent:   profile.TotalBCoinsSpent,
		RecentTransactions: recent,
		FavoriteBusinesses: favorites,
	}, nil
}

func (s *service) BusinessDashboard(ctx context.Context, ownerUserID uuid.UUID) (*models.BusinessDashboard, error) {
	business, err := s.businesses.GetByOwnerUserID(ownerUserID)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.ledger.GetBusinessTransactions(ctx, business.ID, businessRecentLimit, 0)
	if err != nil {
		return nil, err
	}

	stats, err := s.ratings.StatsForBusiness(business.ID)
	if err != nil {
		return nil, err
	}

	activeQRs, err := s.qrCodes.CountActiveByBusiness(business.ID)
	if err != nil {
		return nil, err
	}

	return &models.BusinessDashboard{
		TotalBCoinsIssued:   business.TotalBCoinsIssued,
		TotalBCoinsRedeemed: business.TotalBCoinsRedeemed,
		TotalCustomers:      business.TotalCustomers,
		ActiveQRCodes:       int(activeQRs),
		AverageRating:       stats.Average,
		RatingCount:         int(stats.Count),
		RecentTransactions:  recent,
	}, nil
}
