package repositories

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
)

// LedgerRepository is the persistence surface of the accrual engine.
// Every balance mutation runs inside ExecuteInTransaction with the
// customer profile row locked, so concurrent earns and redemptions
// against one customer serialize at the database.
type LedgerRepository interface {
	// Profile operations
	GetProfile(customerID uuid.UUID) (*models.CustomerProfile, error)
	GetProfileForUpdate(customerID uuid.UUID) (*models.CustomerProfile, error)
	SaveProfile(profile *models.CustomerProfile) error

	// Business counters
	GetBusiness(id uuid.UUID) (*models.Business, error)
	GetBusinessForUpdate(id uuid.UUID) (*models.Business, error)
	SaveBusiness(business *models.Business) error

	// Ledger entries (append-only)
	CreateTransaction(tx *models.BCoinTransaction) error
	GetTransactionByID(id uuid.UUID) (*models.BCoinTransaction, error)
	GetTransactionByIdempotencyKey(key string) (*models.BCoinTransaction, error)
	ListCustomerTransactions(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error)
	ListBusinessTransactions(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error)
	HasCustomerTransactions(customerID, businessID uuid.UUID) (bool, error)

	// Side records written inside the same transaction
	CreateRating(rating *models.Rating) error
	CreateNotification(n *models.Notification) error

	// ExecuteInTransaction runs fn against a tx-scoped repository.
	// Returning an error rolls everything back.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
