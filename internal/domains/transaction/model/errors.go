package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrTransactionNotFound is returned when the transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrItemNotFound is returned when the referenced item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrMembershipNotFound is returned when the referenced membership
	// does not exist.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrItemNotAvailable is returned when issuing an item that is not
	// available for lending.
	ErrItemNotAvailable = errors.New("item not available")

	// ErrMembershipNotActive is returned when issuing against a membership
	// that is not active.
	ErrMembershipNotActive = errors.New("membership not active")

	// ErrAlreadyReturned is returned when returning a transaction that is
	// already settled.
	ErrAlreadyReturned = errors.New("transaction already returned")

	// ErrFineAlreadyPaid is returned when paying a fine that is already paid.
	ErrFineAlreadyPaid = errors.New("fine already paid")

	// ErrNoFineDue is returned when paying a transaction with no positive fine.
	ErrNoFineDue = errors.New("no fine due on this transaction")

	// ErrForbidden is returned when the caller may not act on the
	// membership the transaction belongs to.
	ErrForbidden = errors.New("not allowed to act on this membership")
)

// NewTransactionNotFoundError creates a detailed not found error.
func NewTransactionNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrTransactionNotFound, id)
}

// IsNotFoundError checks if err is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrMembershipNotFound)
}

// IsInvalidStateError checks if err is a lifecycle precondition failure.
func IsInvalidStateError(err error) bool {
	return errors.Is(err, ErrItemNotAvailable) ||
		errors.Is(err, ErrMembershipNotActive) ||
		errors.Is(err, ErrAlreadyReturned) ||
		errors.Is(err, ErrFineAlreadyPaid) ||
		errors.Is(err, ErrNoFineDue)
}
