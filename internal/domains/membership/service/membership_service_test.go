package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/shared/auth"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Membership), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]model.Membership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Membership), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) CountActiveTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func testMembership(ownerID uuid.UUID) *model.Membership {
	now := time.Now()
	return &model.Membership{
		ID:               uuid.New(),
		MembershipNumber: "MEM-001",
		UserID:           ownerID,
		StartDate:        now,
		EndDate:          now.Add(365 * 24 * time.Hour),
		Status:           model.StatusActive,
		MembershipType:   model.TypeStandard,
		FineAmount:       decimal.Zero,
		Owner:            &model.OwnerSummary{ID: ownerID, Username: "reader"},
	}
}

func TestCreateMembership(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("end date must be after start date", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		start := time.Now()
		end := start.Add(-time.Hour)
		_, err := svc.CreateMembership(ctx, &model.CreateMembershipRequest{
			MembershipNumber: "MEM-001",
			UserID:           userID,
			StartDate:        &start,
			EndDate:          end,
		})

		assert.ErrorIs(t, err, model.ErrInvalidValidityWindow)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("defaults to active standard with zero fine", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		var created *model.Membership
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Membership")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.Membership)
			}).
			Return(nil)
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(testMembership(userID), nil)

		_, err := svc.CreateMembership(ctx, &model.CreateMembershipRequest{
			MembershipNumber: "MEM-001",
			UserID:           userID,
			EndDate:          time.Now().Add(365 * 24 * time.Hour),
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, model.StatusActive, created.Status)
		assert.Equal(t, model.TypeStandard, created.MembershipType)
		assert.True(t, created.FineAmount.IsZero())
	})
}

func TestGetMembership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	membership := testMembership(owner)

	t.Run("owner reads own membership", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("GetByID", mock.Anything, membership.ID).Return(membership, nil)

		res, err := svc.GetMembership(ctx, auth.Principal{ID: owner, Role: auth.RoleUser}, membership.ID)

		require.NoError(t, err)
		assert.Equal(t, membership.ID, res.ID)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("GetByID", mock.Anything, membership.ID).Return(membership, nil)

		_, err := svc.GetMembership(ctx, auth.Principal{ID: uuid.New(), Role: auth.RoleUser}, membership.ID)

		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("admin reads any membership", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("GetByID", mock.Anything, membership.ID).Return(membership, nil)

		_, err := svc.GetMembership(ctx, auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}, membership.ID)

		assert.NoError(t, err)
	})
}

func TestListMemberships(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("regular user sees only own memberships", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("ListByUser", mock.Anything, owner).
			Return([]model.Membership{*testMembership(owner)}, nil)

		res, err := svc.ListMemberships(ctx, auth.Principal{ID: owner, Role: auth.RoleUser})

		require.NoError(t, err)
		assert.Len(t, res, 1)
		repo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("admin sees all", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("List", mock.Anything).
			Return([]model.Membership{*testMembership(owner), *testMembership(uuid.New())}, nil)

		res, err := svc.ListMemberships(ctx, auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin})

		require.NoError(t, err)
		assert.Len(t, res, 2)
	})
}

func TestDeleteMembership(t *testing.T) {
	ctx := context.Background()
	membership := testMembership(uuid.New())

	t.Run("refused while loans are active", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("GetByID", mock.Anything, membership.ID).Return(membership, nil)
		repo.On("CountActiveTransactions", mock.Anything, membership.ID).Return(2, nil)

		err := svc.DeleteMembership(ctx, membership.ID)

		assert.ErrorIs(t, err, model.ErrMembershipHasActiveLoans)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when no active loans", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)
		repo.On("GetByID", mock.Anything, membership.ID).Return(membership, nil)
		repo.On("CountActiveTransactions", mock.Anything, membership.ID).Return(0, nil)
		repo.On("Delete", mock.Anything, membership.ID).Return(nil)

		require.NoError(t, svc.DeleteMembership(ctx, membership.ID))
		repo.AssertExpectations(t)
	})
}
