package models

import "github.com/google/uuid"

// Rating bonus amounts, credited once per (customer, business) pair.
const (
	RatingBonusHigh          = 10.0
	RatingBonusLow           = 5.0
	RatingBonusHighThreshold = 4
)

type Rating struct {
	BaseModel
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_customer_business" json:"customerId"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_customer_business" json:"businessId"`
	Stars       int       `gorm:"not null" json:"stars"`
	Comment     string    `json:"comment"`
	BonusAmount float64   `gorm:"default:0" json:"bonusAmount"`
}

// BonusFor returns the B-Coin bonus a rating of the given stars earns.
func BonusFor(stars int) float64 {
	if stars >= RatingBonusHighThreshold {
		return RatingBonusHigh
	}
	return RatingBonusLow
}
