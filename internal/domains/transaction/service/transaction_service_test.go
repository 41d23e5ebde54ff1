package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	membershipmodel "library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/transaction/model"
	"library-backend/internal/shared/auth"
)

// mockRepository implements repository.RepositoryInterface. WithTx runs the
// body directly so lifecycle logic can be exercised without a database.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return fn(nil)
}

func (m *mockRepository) Create(ctx context.Context, tx pgx.Tx, t *model.Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockRepository) UpdateOnReturn(ctx context.Context, tx pgx.Tx, t *model.Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *mockRepository) MarkFinePaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, paidAt time.Time, paidBy uuid.UUID) error {
	args := m.Called(ctx, tx, id, paidAt, paidBy)
	return args.Error(0)
}

func (m *mockRepository) GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*model.ItemState, error) {
	args := m.Called(ctx, tx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ItemState), args.Error(1)
}

func (m *mockRepository) UpdateItemStatus(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, status catalogmodel.ItemStatus) error {
	args := m.Called(ctx, tx, itemID, status)
	return args.Error(0)
}

func (m *mockRepository) GetMembershipForUpdate(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID) (*model.MembershipState, error) {
	args := m.Called(ctx, tx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MembershipState), args.Error(1)
}

func (m *mockRepository) AdjustMembershipFine(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, membershipID, delta)
	return args.Error(0)
}

func (m *mockRepository) ListOverdue(ctx context.Context, ownerID *uuid.UUID, now time.Time) ([]model.Transaction, error) {
	args := m.Called(ctx, ownerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *mockRepository) ListActive(ctx context.Context, ownerID *uuid.UUID) ([]model.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, req model.ListTransactionsRequest, ownerID *uuid.UUID) ([]model.Transaction, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

// mockCache is a no-op cache.Cache.
type mockCache struct{}

func (mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (mockCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (mockCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (mockCache) Ping(ctx context.Context) error                          { return nil }

// recordingCache captures invalidations issued by the lifecycle service.
type recordingCache struct {
	mockCache
	deleted  []string
	patterns []string
}

func (c *recordingCache) Delete(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *recordingCache) DeletePattern(ctx context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	return nil
}

func newTestService(repo *mockRepository) ServiceInterface {
	return NewService(repo, mockCache{}, decimal.NewFromInt(1))
}

func joined(t model.Transaction, ownerID uuid.UUID) *model.Transaction {
	t.Item = &model.ItemSummary{ID: t.ItemID, Title: "The Go Programming Language"}
	t.Membership = &model.MembershipSummary{
		ID:   t.MembershipID,
		User: &model.UserSummary{ID: ownerID},
	}
	return &t
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	itemID := uuid.New()
	membershipID := uuid.New()
	principal := auth.Principal{ID: owner, Role: auth.RoleUser}
	req := &model.IssueRequest{
		ItemID:       itemID,
		MembershipID: membershipID,
		ReturnDate:   time.Now().Add(14 * 24 * time.Hour),
	}

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive}, nil)

		var created *model.Transaction
		repo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Transaction")).
			Run(func(args mock.Arguments) {
				created = args.Get(2).(*model.Transaction)
			}).
			Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusIssued).
			Return(nil)
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(joined(model.Transaction{
				ID:              uuid.New(),
				ItemID:          itemID,
				MembershipID:    membershipID,
				Status:          model.StatusActive,
				TransactionType: model.TypeIssue,
			}, owner), nil)

		res, err := svc.Issue(ctx, principal, req)

		require.NoError(t, err)
		assert.Equal(t, model.StatusActive.String(), res.Status)
		require.NotNil(t, created)
		assert.Equal(t, model.TypeIssue, created.TransactionType)
		assert.Equal(t, model.StatusActive, created.Status)
		assert.True(t, created.Fine.IsZero())
		assert.False(t, created.FinePaid)
		assert.Equal(t, owner, created.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("past due date issues an immediately overdue loan", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		pastDue := &model.IssueRequest{
			ItemID:       itemID,
			MembershipID: membershipID,
			ReturnDate:   time.Now().Add(-24 * time.Hour),
		}

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive}, nil)

		var created *model.Transaction
		repo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Transaction")).
			Run(func(args mock.Arguments) {
				created = args.Get(2).(*model.Transaction)
			}).
			Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusIssued).
			Return(nil)
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(joined(model.Transaction{
				ID:           uuid.New(),
				ItemID:       itemID,
				MembershipID: membershipID,
				ReturnDate:   pastDue.ReturnDate,
				Status:       model.StatusActive,
			}, owner), nil)

		_, err := svc.Issue(ctx, principal, pastDue)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, pastDue.ReturnDate, created.ReturnDate)
		assert.Equal(t, model.StatusActive, created.Status)
		repo.AssertExpectations(t)
	})

	t.Run("status flip drops item and list caches", func(t *testing.T) {
		repo := new(mockRepository)
		cache := &recordingCache{}
		svc := NewService(repo, cache, decimal.NewFromInt(1))

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive}, nil)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusIssued).
			Return(nil)
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(joined(model.Transaction{ID: uuid.New(), ItemID: itemID, MembershipID: membershipID}, owner), nil)

		_, err := svc.Issue(ctx, principal, req)

		require.NoError(t, err)
		assert.Contains(t, cache.deleted, catalogrepo.ItemCacheKey(itemID))
		assert.Contains(t, cache.patterns, catalogrepo.ItemListPattern)
	})

	t.Run("item not available", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusIssued}, nil)

		_, err := svc.Issue(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrItemNotAvailable)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("item missing", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(nil, model.ErrItemNotFound)

		_, err := svc.Issue(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrItemNotFound)
	})

	t.Run("membership not active", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusExpired}, nil)

		_, err := svc.Issue(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrMembershipNotActive)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden for non owner", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: uuid.New(), Status: membershipmodel.StatusActive}, nil)

		_, err := svc.Issue(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin may issue for any membership", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		admin := auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin}

		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusAvailable}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive}, nil)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusIssued).Return(nil)
		repo.On("GetByID", mock.Anything, mock.Anything).
			Return(joined(model.Transaction{ID: uuid.New(), ItemID: itemID, MembershipID: membershipID, Status: model.StatusActive}, owner), nil)

		_, err := svc.Issue(ctx, admin, req)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestReturn(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	itemID := uuid.New()
	membershipID := uuid.New()
	txnID := uuid.New()
	principal := auth.Principal{ID: owner, Role: auth.RoleUser}
	req := &model.ReturnRequest{TransactionID: txnID}

	activeTxn := func(due time.Time) *model.Transaction {
		return &model.Transaction{
			ID:              txnID,
			ItemID:          itemID,
			MembershipID:    membershipID,
			IssueDate:       due.Add(-14 * 24 * time.Hour),
			ReturnDate:      due,
			Status:          model.StatusActive,
			Fine:            decimal.Zero,
			TransactionType: model.TypeIssue,
		}
	}

	expectLocks := func(repo *mockRepository) {
		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusIssued}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive}, nil)
	}

	t.Run("on time return accrues no fine", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(activeTxn(time.Now().Add(24*time.Hour)), nil)
		expectLocks(repo)

		var settled *model.Transaction
		repo.On("UpdateOnReturn", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Transaction")).
			Run(func(args mock.Arguments) {
				settled = args.Get(2).(*model.Transaction)
			}).
			Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusAvailable).
			Return(nil)
		repo.On("GetByID", mock.Anything, txnID).
			Return(joined(model.Transaction{ID: txnID, ItemID: itemID, MembershipID: membershipID, Status: model.StatusReturned}, owner), nil)

		res, err := svc.Return(ctx, principal, req)

		require.NoError(t, err)
		assert.Equal(t, model.StatusReturned.String(), res.Status)
		require.NotNil(t, settled)
		assert.True(t, settled.Fine.IsZero())
		assert.NotNil(t, settled.ActualReturnDate)
		repo.AssertNotCalled(t, "AdjustMembershipFine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("late return accrues ceiling day fine", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		// Due 49 hours ago: 3 chargeable days at rate 1.
		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(activeTxn(time.Now().Add(-49*time.Hour)), nil)
		expectLocks(repo)

		var settled *model.Transaction
		repo.On("UpdateOnReturn", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Transaction")).
			Run(func(args mock.Arguments) {
				settled = args.Get(2).(*model.Transaction)
			}).
			Return(nil)
		repo.On("AdjustMembershipFine", mock.Anything, mock.Anything, membershipID,
			mock.MatchedBy(func(d decimal.Decimal) bool {
				return d.Equal(decimal.NewFromInt(3))
			})).
			Return(nil)
		repo.On("UpdateItemStatus", mock.Anything, mock.Anything, itemID, catalogmodel.StatusAvailable).
			Return(nil)
		repo.On("GetByID", mock.Anything, txnID).
			Return(joined(model.Transaction{ID: txnID, ItemID: itemID, MembershipID: membershipID, Status: model.StatusReturned, Fine: decimal.NewFromInt(3)}, owner), nil)

		_, err := svc.Return(ctx, principal, req)

		require.NoError(t, err)
		require.NotNil(t, settled)
		assert.True(t, settled.Fine.Equal(decimal.NewFromInt(3)), "got fine %s", settled.Fine)
		repo.AssertExpectations(t)
	})

	t.Run("already returned", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		txn := activeTxn(time.Now())
		txn.Status = model.StatusReturned
		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).Return(txn, nil)

		_, err := svc.Return(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrAlreadyReturned)
		repo.AssertNotCalled(t, "UpdateOnReturn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden for non owner", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(activeTxn(time.Now()), nil)
		repo.On("GetItemForUpdate", mock.Anything, mock.Anything, itemID).
			Return(&model.ItemState{ID: itemID, Status: catalogmodel.StatusIssued}, nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: uuid.New(), Status: membershipmodel.StatusActive}, nil)

		_, err := svc.Return(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateOnReturn", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPayFine(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	itemID := uuid.New()
	membershipID := uuid.New()
	txnID := uuid.New()
	principal := auth.Principal{ID: owner, Role: auth.RoleUser}
	req := &model.PayFineRequest{TransactionID: txnID}

	returnedTxn := func(fine int64, paid bool) *model.Transaction {
		now := time.Now()
		return &model.Transaction{
			ID:               txnID,
			ItemID:           itemID,
			MembershipID:     membershipID,
			ReturnDate:       now.Add(-48 * time.Hour),
			ActualReturnDate: &now,
			Status:           model.StatusReturned,
			Fine:             decimal.NewFromInt(fine),
			FinePaid:         paid,
			TransactionType:  model.TypeIssue,
		}
	}

	t.Run("success appends negated payment and settles original", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(returnedTxn(2, false), nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: owner, Status: membershipmodel.StatusActive, FineAmount: decimal.NewFromInt(2)}, nil)

		var payment *model.Transaction
		repo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Transaction")).
			Run(func(args mock.Arguments) {
				payment = args.Get(2).(*model.Transaction)
			}).
			Return(nil)
		repo.On("MarkFinePaid", mock.Anything, mock.Anything, txnID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("uuid.UUID")).
			Return(nil)
		repo.On("AdjustMembershipFine", mock.Anything, mock.Anything, membershipID,
			mock.MatchedBy(func(d decimal.Decimal) bool {
				return d.Equal(decimal.NewFromInt(-2))
			})).
			Return(nil)
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(joined(model.Transaction{
				ID:              uuid.New(),
				ItemID:          itemID,
				MembershipID:    membershipID,
				Status:          model.StatusReturned,
				Fine:            decimal.NewFromInt(-2),
				FinePaid:        true,
				TransactionType: model.TypePayFine,
			}, owner), nil)

		res, err := svc.PayFine(ctx, principal, req)

		require.NoError(t, err)
		assert.True(t, res.Fine.Equal(decimal.NewFromInt(-2)))
		require.NotNil(t, payment)
		assert.Equal(t, model.TypePayFine, payment.TransactionType)
		assert.Equal(t, model.StatusReturned, payment.Status)
		assert.True(t, payment.Fine.Equal(decimal.NewFromInt(-2)))
		assert.True(t, payment.FinePaid)
		assert.True(t, payment.IsPayment())
		repo.AssertExpectations(t)
	})

	t.Run("already paid", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(returnedTxn(2, true), nil)

		_, err := svc.PayFine(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrFineAlreadyPaid)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no fine due", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(returnedTxn(0, false), nil)

		_, err := svc.PayFine(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrNoFineDue)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden for non owner", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("GetForUpdate", mock.Anything, mock.Anything, txnID).
			Return(returnedTxn(2, false), nil)
		repo.On("GetMembershipForUpdate", mock.Anything, mock.Anything, membershipID).
			Return(&model.MembershipState{ID: membershipID, UserID: uuid.New(), Status: membershipmodel.StatusActive}, nil)

		_, err := svc.PayFine(ctx, principal, req)

		assert.ErrorIs(t, err, model.ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListOverdue(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	overdueRow := func(dueAgo time.Duration) model.Transaction {
		return *joined(model.Transaction{
			ID:           uuid.New(),
			ItemID:       uuid.New(),
			MembershipID: uuid.New(),
			ReturnDate:   time.Now().Add(-dueAgo),
			Status:       model.StatusActive,
			Fine:         decimal.Zero,
		}, owner)
	}

	t.Run("regular user is scoped to own memberships", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("ListOverdue", mock.Anything,
			mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == owner }),
			mock.AnythingOfType("time.Time")).
			Return([]model.Transaction{overdueRow(26 * time.Hour)}, nil)

		res, err := svc.ListOverdue(ctx, auth.Principal{ID: owner, Role: auth.RoleUser})

		require.NoError(t, err)
		require.Len(t, res, 1)
		// 26 hours past due: 2 chargeable days at rate 1, as a projection only.
		require.NotNil(t, res[0].CalculatedFine)
		assert.True(t, res[0].CalculatedFine.Equal(decimal.NewFromInt(2)),
			"got %s", res[0].CalculatedFine)
		assert.True(t, res[0].Fine.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("admin sees all", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)

		repo.On("ListOverdue", mock.Anything,
			mock.MatchedBy(func(id *uuid.UUID) bool { return id == nil }),
			mock.AnythingOfType("time.Time")).
			Return([]model.Transaction{overdueRow(2 * time.Hour), overdueRow(30 * time.Hour)}, nil)

		res, err := svc.ListOverdue(ctx, auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin})

		require.NoError(t, err)
		assert.Len(t, res, 2)
		repo.AssertExpectations(t)
	})
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	txnID := uuid.New()

	repoTxn := joined(model.Transaction{
		ID:           txnID,
		ItemID:       uuid.New(),
		MembershipID: uuid.New(),
		Status:       model.StatusActive,
	}, owner)

	t.Run("owner reads own transaction", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", mock.Anything, txnID).Return(repoTxn, nil)

		res, err := svc.GetTransaction(ctx, auth.Principal{ID: owner, Role: auth.RoleUser}, txnID)

		require.NoError(t, err)
		assert.Equal(t, txnID, res.ID)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", mock.Anything, txnID).Return(repoTxn, nil)

		_, err := svc.GetTransaction(ctx, auth.Principal{ID: uuid.New(), Role: auth.RoleUser}, txnID)

		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}
