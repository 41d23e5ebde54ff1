package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/membership/model"
)

// RepositoryInterface defines membership data access. Get and list queries
// join the owning user for display.
type RepositoryInterface interface {
	// Create inserts a new membership.
	// Returns model.ErrMembershipNumberExists on duplicate number,
	// model.ErrUserNotFound when the owning user does not exist.
	Create(ctx context.Context, m *model.Membership) error

	// GetByID fetches a membership with its owner joined.
	// Returns model.ErrMembershipNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Membership, error)

	// ListByUser fetches all memberships owned by a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)

	// List fetches all memberships, newest first.
	List(ctx context.Context) ([]model.Membership, error)

	// Update persists membership fields except the fine balance.
	// Returns model.ErrMembershipNotFound if not exists,
	// model.ErrMembershipNumberExists on duplicate number.
	Update(ctx context.Context, m *model.Membership) error

	// Delete removes a membership.
	// Returns model.ErrMembershipNotFound if not exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountActiveTransactions reports how many active loans reference the
	// membership; used to refuse deletes that would orphan live loans.
	CountActiveTransactions(ctx context.Context, id uuid.UUID) (int, error)
}
