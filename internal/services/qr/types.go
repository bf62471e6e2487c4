package qr

import (
	"time"

	"github.com/google/uuid"

	"baartal/internal/models"
)

// MaxActivePerBusiness caps the number of live counter tokens a single
// business may hold.
const MaxActivePerBusiness = 10

// MintRequest creates a new counter token. A nil ExpiresAt mints a
// token that stays valid until deactivated.
type MintRequest struct {
	BusinessID  uuid.UUID
	Description string
	ExpiresAt   *time.Time
}

// ResolveResult pairs a scanned token with the business it credits.
type ResolveResult struct {
	QRCode   *models.QRCode   `json:"qrCode"`
	Business *models.Business `json:"business"`
}
