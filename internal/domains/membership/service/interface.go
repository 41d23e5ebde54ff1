package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/shared/auth"
)

// ServiceInterface defines membership business operations. Read operations
// are scoped by the caller: admins see everything, members see their own.
type ServiceInterface interface {
	// CreateMembership registers a new membership for a user (admin only
	// at the routing layer).
	CreateMembership(ctx context.Context, req *model.CreateMembershipRequest) (*model.MembershipResponse, error)

	// GetMembership fetches one membership; non-admin callers may only
	// read memberships they own.
	GetMembership(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.MembershipResponse, error)

	// ListMemberships returns all memberships for admins, or the caller's
	// own memberships otherwise.
	ListMemberships(ctx context.Context, principal auth.Principal) ([]model.MembershipResponse, error)

	// UpdateMembership applies the non-nil fields of req.
	UpdateMembership(ctx context.Context, id uuid.UUID, req *model.UpdateMembershipRequest) (*model.MembershipResponse, error)

	// DeleteMembership removes a membership unless active loans reference it.
	DeleteMembership(ctx context.Context, id uuid.UUID) error
}
