package ledger

import (
	"github.com/google/uuid"

	"baartal/internal/models"
)

// EarnRequest credits coins for a purchase.
type EarnRequest struct {
	CustomerID     uuid.UUID
	BusinessID     uuid.UUID
	BillAmount     float64
	QRCodeID       *uuid.UUID
	IdempotencyKey string
	Description    string
}

// RedeemRequest debits coins at a partner business.
type RedeemRequest struct {
	CustomerID     uuid.UUID
	BusinessID     uuid.UUID
	Amount         float64
	IdempotencyKey string
	Description    string
}

// RatingBonusRequest creates a rating and credits its bonus.
type RatingBonusRequest struct {
	CustomerID uuid.UUID
	BusinessID uuid.UUID
	Stars      int
	Comment    string
}

// Result is the outcome of a ledger mutation. Replayed is set when an
// idempotency key matched an existing transaction and nothing changed.
type Result struct {
	Transaction *models.BCoinTransaction `json:"transaction"`
	Balance     float64                  `json:"balance"`
	Replayed    bool                     `json:"replayed"`
}

// RatingResult is the outcome of RatingBonus.
type RatingResult struct {
	Rating      *models.Rating           `json:"rating"`
	Transaction *models.BCoinTransaction `json:"transaction"`
	Balance     float64                  `json:"balance"`
}
