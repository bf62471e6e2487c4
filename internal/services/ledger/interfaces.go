package ledger

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
)

// Service is the accrual/redemption engine interface.
type Service interface {
	// Balance mutations
	Earn(ctx context.Context, req EarnRequest) (*Result, error)
	Redeem(ctx context.Context, req RedeemRequest) (*Result, error)
	RatingBonus(ctx context.Context, req RatingBonusRequest) (*RatingResult, error)

	// Reads
	GetBalance(ctx context.Context, customerID uuid.UUID) (*models.CustomerProfile, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.BCoinTransaction, error)
	GetCustomerTransactions(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error)
	GetBusinessTransactions(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error)
}
