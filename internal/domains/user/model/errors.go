package model

import "errors"

var (
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("a user with that username or email already exists")

	// ErrEmailInUse is returned when a profile update targets a taken email.
	ErrEmailInUse = errors.New("email already in use by another account")

	// ErrInvalidCredentials is returned on bad username/password. The same
	// error covers unknown usernames so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive is returned when a deactivated account logs in.
	ErrUserInactive = errors.New("account is inactive")

	// ErrWrongPassword is returned when the current password check fails
	// during a password change.
	ErrWrongPassword = errors.New("current password is incorrect")
)

// IsNotFoundError checks if err is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsConflictError checks if err is a uniqueness conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrUserAlreadyExists) || errors.Is(err, ErrEmailInUse)
}
