package repositories

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
)

// BusinessFilter narrows business listings.
type BusinessFilter struct {
	Category   string
	Pincode    string
	BundleID   *uuid.UUID
	OnlyActive bool
	Limit      int
	Offset     int
}

// BusinessRepository covers business registration and lookup. The
// exclusivity check runs inside ExecuteInTransaction while holding the
// pincode's bundle row lock, so two registrations for the same
// (category, pincode) cannot interleave.
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id uuid.UUID) (*models.Business, error)
	GetByOwnerUserID(ownerID uuid.UUID) (*models.Business, error)
	Update(business *models.Business) error
	List(ctx context.Context, filter BusinessFilter) ([]models.Business, int64, error)

	// FindActiveCategoryClash returns the active business occupying
	// (category, pincode), excluding excludeID. Nil when the slot is
	// free.
	FindActiveCategoryClash(category, pincode string, excludeID uuid.UUID) (*models.Business, error)

	// GetOrCreateBundleForUpdate resolves the pincode's bundle,
	// creating it on first registration, and locks the row for the
	// rest of the transaction.
	GetOrCreateBundleForUpdate(pincode string) (*models.Bundle, error)

	CreateQRCode(qr *models.QRCode) error

	ExecuteInTransaction(fn func(BusinessRepository) error) error
}
