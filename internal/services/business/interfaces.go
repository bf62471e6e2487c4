package business

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
	"baartal/internal/repositories"
)

// Service manages partner businesses under the bundle rule: at most
// one active business per category in any pincode.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Update(ctx context.Context, callerID, businessID uuid.UUID, req UpdateRequest) (*models.Business, error)
	Deactivate(ctx context.Context, callerID, businessID uuid.UUID) error
	Reactivate(ctx context.Context, callerID, businessID uuid.UUID) error

	Get(ctx context.Context, id uuid.UUID) (*models.Business, error)
	GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Business, error)
	List(ctx context.Context, filter repositories.BusinessFilter) ([]models.Business, int64, error)
}
