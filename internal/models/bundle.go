package models

// Bundle groups the partner businesses of one pincode. Bundles are
// created lazily when the first business registers in a pincode; the
// unique index on Pincode keeps concurrent first registrations from
// minting duplicates.
type Bundle struct {
	BaseModel
	Name        string     `gorm:"not null" json:"name"`
	Pincode     string     `gorm:"uniqueIndex;not null" json:"pincode"`
	Description string     `json:"description"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	Businesses  []Business `gorm:"foreignKey:BundleID" json:"businesses,omitempty"`
}
