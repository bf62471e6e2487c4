package models

import "github.com/google/uuid"

// Business categories. At most one active business per category exists
// in any pincode bundle.
const (
	CategoryKirana      = "kirana"
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryFood        = "food"
	CategorySalon       = "salon"
	CategoryFootwear    = "footwear"
	CategoryCafe        = "cafe"
	CategoryGifts       = "gifts"
	CategoryPharmacy    = "pharmacy"
	CategoryStationery  = "stationery"
)

// B-Coin rate bounds, in percent of bill amount.
const (
	DefaultBCoinRate = 5.0
	MinBCoinRate     = 0.0
	MaxBCoinRate     = 20.0
)

var BusinessCategories = []string{
	CategoryKirana,
	CategoryElectronics,
	CategoryClothing,
	CategoryFood,
	CategorySalon,
	CategoryFootwear,
	CategoryCafe,
	CategoryGifts,
	CategoryPharmacy,
	CategoryStationery,
}

// IsValidCategory reports whether category is one of the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range BusinessCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Business struct {
	BaseModel
	OwnerUserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"ownerUserId"`
	BusinessName        string     `gorm:"not null" json:"businessName"`
	Category            string     `gorm:"not null;index:idx_business_category_pincode" json:"category"`
	Pincode             string     `gorm:"not null;index:idx_business_category_pincode" json:"pincode"`
	Address             string     `json:"address"`
	Description         string     `json:"description"`
	BCoinRate           float64    `gorm:"not null;default:5" json:"bCoinRate"`
	IsVerified          bool       `gorm:"default:false" json:"isVerified"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	BundleID            *uuid.UUID `gorm:"type:uuid;index" json:"bundleId"`
	TotalBCoinsIssued   float64    `gorm:"default:0" json:"totalBCoinsIssued"`
	TotalBCoinsRedeemed float64    `gorm:"default:0" json:"totalBCoinsRedeemed"`
	TotalCustomers      int        `gorm:"default:0" json:"totalCustomers"`
}
