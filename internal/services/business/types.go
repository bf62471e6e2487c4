package business

import (
	"github.com/google/uuid"

	"baartal/internal/models"
)

// RegisterRequest carries a new business registration. A nil BCoinRate
// falls back to models.DefaultBCoinRate.
type RegisterRequest struct {
	OwnerUserID  uuid.UUID
	BusinessName string
	Category     string
	Pincode      string
	Address      string
	Description  string
	BCoinRate    *float64
}

// UpdateRequest is a partial update; nil fields keep their current
// value. Changing Category or Pincode re-enters the exclusivity check.
type UpdateRequest struct {
	BusinessName *string
	Category     *string
	Pincode      *string
	Address      *string
	Description  *string
	BCoinRate    *float64
}

// RegisterResult is the created business together with its first
// counter QR token.
type RegisterResult struct {
	Business *models.Business `json:"business"`
	QRCode   *models.QRCode   `json:"qrCode"`
}
