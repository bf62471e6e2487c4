package models

import (
	"time"

	"github.com/google/uuid"
)

// QRCode is a reusable counter token. A business may keep several
// active tokens at once (one per counter); each is scanned any number
// of times until deactivated or past ExpiresAt. The bill amount is
// supplied at scan time, never stored on the token.
type QRCode struct {
	BaseModel
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	BusinessID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"businessId"`
	Description string     `json:"description"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the token has an expiry in the past.
func (q *QRCode) Expired(now time.Time) bool {
	return q.ExpiresAt != nil && now.After(*q.ExpiresAt)
}
