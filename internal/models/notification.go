package models

import "github.com/google/uuid"

// Notification types
const (
	NotificationTypeEarned   = "bcoins_earned"
	NotificationTypeRedeemed = "bcoins_redeemed"
	NotificationTypeRating   = "rating_bonus"
	NotificationTypeSystem   = "system"
)

// Notification is a stored in-app record. Delivery to devices is out
// of scope; clients poll the list endpoint.
type Notification struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Type    string    `gorm:"not null" json:"type"`
	Title   string    `gorm:"not null" json:"title"`
	Message string    `json:"message"`
	IsRead  bool      `gorm:"default:false;index" json:"isRead"`
}
