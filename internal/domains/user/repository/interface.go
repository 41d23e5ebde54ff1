package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// RepositoryInterface defines user data access.
type RepositoryInterface interface {
	// Create inserts a new user.
	// Returns model.ErrUserAlreadyExists on username/email conflict.
	Create(ctx context.Context, u *model.User) error

	// GetByID fetches a user by primary key.
	// Returns model.ErrUserNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername fetches a user by unique username.
	// Returns model.ErrUserNotFound if not exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// ExistsByEmail reports whether any user has the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists profile fields (name, email, phone, password hash).
	// Returns model.ErrUserNotFound if not exists.
	Update(ctx context.Context, u *model.User) error
}
