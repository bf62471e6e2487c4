package models

import "github.com/google/uuid"

// Transaction types. Amount is always a positive magnitude; the type
// carries the direction.
const (
	TransactionTypeEarned   = "earned"
	TransactionTypeRedeemed = "redeemed"
)

// BCoinTransaction is an immutable ledger entry. Rows are only ever
// appended; balances derive from them.
type BCoinTransaction struct {
	BaseModel
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"customerId"`
	BusinessID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"businessId"`
	Type           string     `gorm:"not null" json:"type"`
	Amount         float64    `gorm:"not null" json:"amount"`
	BillAmount     *float64   `json:"billAmount,omitempty"`
	Description    string     `json:"description"`
	QRCodeID       *uuid.UUID `gorm:"type:uuid;index" json:"qrCodeId,omitempty"`
	IdempotencyKey *string    `gorm:"uniqueIndex" json:"idempotencyKey,omitempty"`
	Metadata       JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
}
