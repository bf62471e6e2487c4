package models

import "github.com/google/uuid"

// CustomerProfile carries a customer's B-Coin balance and lifetime
// counters. BCoinBalance equals TotalBCoinsEarned minus
// TotalBCoinsSpent at all times; every mutation goes through the
// ledger service under a row lock.
type CustomerProfile struct {
	BaseModel
	UserID             uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	BCoinBalance       float64    `gorm:"not null;default:0" json:"bCoinBalance"`
	TotalBCoinsEarned  float64    `gorm:"not null;default:0" json:"totalBCoinsEarned"`
	TotalBCoinsSpent   float64    `gorm:"not null;default:0" json:"totalBCoinsSpent"`
	PreferredPincode   string     `gorm:"index" json:"preferredPincode"`
	FavoriteBusinesses []Business `gorm:"many2many:customer_favorite_businesses" json:"favoriteBusinesses,omitempty"`
}
