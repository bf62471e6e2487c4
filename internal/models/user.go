package models

// User types
const (
	UserTypeCustomer = "customer"
	UserTypeBusiness = "business"
	UserTypeAdmin    = "admin"
)

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`
	Phone        string `gorm:"index" json:"phone"`
	UserType     string `gorm:"not null;default:'customer'" json:"userType"`
	Pincode      string `gorm:"index" json:"pincode"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	TokenVersion int    `gorm:"default:1" json:"-"`
}

func (u *User) IsBusiness() bool {
	return u.UserType == UserTypeBusiness
}

func (u *User) IsCustomer() bool {
	return u.UserType == UserTypeCustomer
}
