package userRepo

import (
	"context"

	"clinixsphere/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is in ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetByRole retrieves all users holding role.
	GetByRole(ctx context.Context, role string) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
}
