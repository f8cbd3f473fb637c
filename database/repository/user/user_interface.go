package userRepo

import (
	"context"

	"karigar/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user. It returns repository.ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile applies the non-nil fields of req. It returns repository.ErrDuplicateEmail
	// if the new email belongs to another account.
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
}
