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
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetProfile(customerID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.Where("user_id = ?", customerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (r *ledgerRepository) GetProfileForUpdate(customerID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", customerID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("lock profile: %w", err)
	}
	return &profile, nil
}

func (r *ledgerRepository) SaveProfile(profile *models.CustomerProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetBusiness(id uuid.UUID) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &business, nil
}

func (r *ledgerRepository) GetBusinessForUpdate(id uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&business, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("lock business: %w", err)
	}
	return &business, nil
}

func (r *ledgerRepository) SaveBusiness(business *models.Business) error {
	if err := r.db.Save(business).Error; err != nil {
		return fmt.Errorf("save business: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.BCoinTransaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByID(id uuid.UUID) (*models.BCoinTransaction, error) {
	var tx models.BCoinTransaction
	if err := r.db.First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) GetTransactionByIdempotencyKey(key string) (*models.BCoinTransaction, error) {
	var tx models.BCoinTransaction
	if err := r.db.Where("idempotency_key = ?", key).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction by idempotency key: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) ListCustomerTransactions(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	return r.listTransactions(ctx, "customer_id = ?", customerID, limit, offset)
}

func (r *ledgerRepository) ListBusinessTransactions(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	return r.listTransactions(ctx, "business_id = ?", businessID, limit, offset)
}

func (r *ledgerRepository) listTransactions(ctx context.Context, cond string, id uuid.UUID, limit, offset int) ([]models.BCoinTransaction, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.BCoinTransaction{}).Where(cond, id)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var txs []models.BCoinTransaction
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txs, total, nil
}

func (r *ledgerRepository) HasCustomerTransactions(customerID, businessID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.BCoinTransaction{}).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check customer transactions: %w", err)
	}
	return count > 0, nil
}

func (r *ledgerRepository) CreateRating(rating *models.Rating) error {
	if err := r.db.Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateNotification(n *models.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
