package validation

import (
	"fmt"

	"baartal/internal/models"
)

// Category checks membership in the fixed category set.
func (v *Validator) Category(field, category string) {
	v.Check(models.IsValidCategory(category), field, "must be a known business category")
}

// BCoinRate checks the earn rate bounds.
func (v *Validator) BCoinRate(field string, rate float64) {
	v.Range(field, rate, models.MinBCoinRate, models.MaxBCoinRate)
}

// Stars checks a rating value.
func (v *Validator) Stars(field string, stars int) {
	v.Check(stars >= 1 && stars <= 5, field, "must be between 1 and 5")
}

// UserType checks a registration account type.
func (v *Validator) UserType(field, userType string) {
	v.Check(userType == models.UserTypeCustomer || userType == models.UserTypeBusiness,
		field, fmt.Sprintf("must be %q or %q", models.UserTypeCustomer, models.UserTypeBusiness))
}
