package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// ServiceInterface defines user account business logic.
type ServiceInterface interface {
	// Register creates a new account with a bcrypt-hashed password.
	// Returns model.ErrUserAlreadyExists on username/email conflict.
	Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error)

	// Login authenticates and issues a JWT token pair.
	// Returns model.ErrInvalidCredentials on unknown user or bad password,
	// model.ErrUserInactive for deactivated accounts.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// RefreshToken exchanges a valid refresh token for a new token pair.
	RefreshToken(ctx context.Context, req model.RefreshTokenRequest) (*model.LoginResponse, error)

	// GetProfile returns the caller's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)

	// UpdateProfile updates basic fields; changing the password requires
	// the current password. Returns model.ErrWrongPassword on mismatch and
	// model.ErrEmailInUse on email conflict.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserDTO, error)
}
