package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrMembershipNotFound is returned when the membership does not exist.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrMembershipNumberExists is returned on duplicate membership numbers.
	ErrMembershipNumberExists = errors.New("a membership with that number already exists")

	// ErrInvalidStatus is returned for unknown status values.
	ErrInvalidStatus = errors.New("invalid membership status")

	// ErrInvalidType is returned for unknown membership types.
	ErrInvalidType = errors.New("invalid membership type, must be standard or premium")

	// ErrInvalidValidityWindow is returned when endDate is not after startDate.
	ErrInvalidValidityWindow = errors.New("membership end date must be after start date")

	// ErrMembershipHasActiveLoans is returned when deleting a membership
	// that live transactions still reference.
	ErrMembershipHasActiveLoans = errors.New("membership has active loans")

	// ErrUserNotFound is returned when the owning user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden is returned when a caller reads a membership they do
	// not own.
	ErrForbidden = errors.New("not allowed to access this membership")
)

// NewMembershipNotFoundError creates a detailed not found error.
func NewMembershipNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrMembershipNotFound, id)
}

// IsNotFoundError checks if err is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrMembershipNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsValidationError checks if err is a business-rule validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidValidityWindow)
}

// IsConflictError checks if err is a uniqueness or consistency conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrMembershipNumberExists) ||
		errors.Is(err, ErrMembershipHasActiveLoans)
}
