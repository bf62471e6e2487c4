package repositories

import (
	"github.com/google/uuid"

	"baartal/internal/models"
)

// UserRepository defines user-related database operations. Customer
// registration creates the user and its profile in one transaction.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	EmailExists(email string) (bool, error)

	// IncrementTokenVersion invalidates all outstanding tokens.
	IncrementTokenVersion(userID uuid.UUID) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error

	CreateProfile(profile *models.CustomerProfile) error

	ExecuteInTransaction(fn func(UserRepository) error) error
}
