package qr

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
)

// Service manages counter QR tokens. Resolve performs every token and
// business check up front so callers only touch the ledger with a
// token that is known good.
type Service interface {
	Mint(ctx context.Context, callerID uuid.UUID, req MintRequest) (*models.QRCode, error)
	Resolve(ctx context.Context, code string) (*ResolveResult, error)
	Deactivate(ctx context.Context, callerID, codeID uuid.UUID) error
	List(ctx context.Context, callerID, businessID uuid.UUID) ([]models.QRCode, error)
}
