package repo

import "github.com/ditservices/asset-tracker/internal/models"

// UserRepository defines the interface for user account operations.
// Email lookups are case-insensitive. Deleting a user who recorded sales
// fails with ErrHasDependentSale.
type UserRepository interface {
	Create(user models.User) (models.User, error)
	GetAll() ([]models.User, error)
	GetByID(id int) (models.User, error)
	GetByEmail(email string) (models.User, error)
	Update(user models.User) (models.User, error)
	Delete(id int) error
}
