package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/membership/repository"
	"library-backend/internal/shared/auth"
)

// MembershipService implements ServiceInterface.
type MembershipService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new membership service.
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &MembershipService{
		repo: repo,
	}
}

// CreateMembership implements ServiceInterface.CreateMembership.
func (s *MembershipService) CreateMembership(ctx context.Context, req *model.CreateMembershipRequest) (*model.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if !req.EndDate.After(startDate) {
		return nil, model.ErrInvalidValidityWindow
	}

	status := model.StatusActive
	if req.Status != "" {
		status = model.MembershipStatus(req.Status)
		if !status.IsValid() {
			return nil, model.ErrInvalidStatus
		}
	}

	membershipType := model.TypeStandard
	if req.MembershipType != "" {
		membershipType = model.MembershipType(req.MembershipType)
		if !membershipType.IsValid() {
			return nil, model.ErrInvalidType
		}
	}

	membership := &model.Membership{
		ID:               uuid.New(),
		MembershipNumber: req.MembershipNumber,
		UserID:           req.UserID,
		StartDate:        startDate,
		EndDate:          req.EndDate,
		Status:           status,
		MembershipType:   membershipType,
		FineAmount:       decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, membership); err != nil {
		return nil, err
	}

	// Re-read to attach the owner summary.
	created, err := s.repo.GetByID(ctx, membership.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created membership: %w", err)
	}

	res := created.ToResponse()
	return &res, nil
}

// GetMembership implements ServiceInterface.GetMembership.
func (s *MembershipService) GetMembership(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.MembershipResponse, error) {
	membership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !principal.CanActOnMembership(membership.UserID) {
		return nil, model.ErrForbidden
	}

	res := membership.ToResponse()
	return &res, nil
}

// ListMemberships implements ServiceInterface.ListMemberships.
func (s *MembershipService) ListMemberships(ctx context.Context, principal auth.Principal) ([]model.MembershipResponse, error) {
	var (
		memberships []model.Membership
		err         error
	)

	if principal.IsAdmin() {
		memberships, err = s.repo.List(ctx)
	} else {
		memberships, err = s.repo.ListByUser(ctx, principal.ID)
	}
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(memberships), nil
}

// UpdateMembership implements ServiceInterface.UpdateMembership.
func (s *MembershipService) UpdateMembership(ctx context.Context, id uuid.UUID, req *model.UpdateMembershipRequest) (*model.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	membership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MembershipNumber != nil {
		membership.MembershipNumber = *req.MembershipNumber
	}
	if req.StartDate != nil {
		membership.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		membership.EndDate = *req.EndDate
	}
	if !membership.EndDate.After(membership.StartDate) {
		return nil, model.ErrInvalidValidityWindow
	}
	if req.Status != nil {
		status := model.MembershipStatus(*req.Status)
		if !status.IsValid() {
			return nil, model.ErrInvalidStatus
		}
		membership.Status = status
	}
	if req.MembershipType != nil {
		membershipType := model.MembershipType(*req.MembershipType)
		if !membershipType.IsValid() {
			return nil, model.ErrInvalidType
		}
		membership.MembershipType = membershipType
	}

	membership.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, membership); err != nil {
		return nil, err
	}

	res := membership.ToResponse()
	return &res, nil
}

// DeleteMembership implements ServiceInterface.DeleteMembership.
func (s *MembershipService) DeleteMembership(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active loans: %w", err)
	}
	if active > 0 {
		return model.ErrMembershipHasActiveLoans
	}

	return s.repo.Delete(ctx, id)
}
