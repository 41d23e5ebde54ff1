package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned when the item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrSerialNumberExists is returned on duplicate serial numbers.
	ErrSerialNumberExists = errors.New("an item with that serial number already exists")

	// ErrInvalidStatus is returned for unknown status values.
	ErrInvalidStatus = errors.New("invalid item status")

	// ErrInvalidKind is returned for unknown item kinds.
	ErrInvalidKind = errors.New("invalid item kind, must be book or movie")

	// ErrStatusReserved is returned when catalog management tries to set
	// the issued status directly; that transition belongs to the lending
	// lifecycle.
	ErrStatusReserved = errors.New("item status 'issued' is managed by the lending lifecycle")

	// ErrItemOnLoan is returned when an item with an active loan is
	// edited or deleted in a way that would break the loan's consistency.
	ErrItemOnLoan = errors.New("item is currently on loan")
)

// NewItemNotFoundError creates a detailed not found error.
func NewItemNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrItemNotFound, id)
}

// IsNotFoundError checks if err is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// IsValidationError checks if err is a business-rule validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrStatusReserved)
}

// IsConflictError checks if err is a uniqueness or consistency conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrSerialNumberExists) || errors.Is(err, ErrItemOnLoan)
}
