package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	catalogmodel "library-backend/internal/domains/catalog/model"
	catalogrepo "library-backend/internal/domains/catalog/repository"
	membershipmodel "library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/transaction/model"
	"library-backend/internal/domains/transaction/repository"
	"library-backend/internal/shared/auth"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

// TransactionService implements ServiceInterface. Each lifecycle operation
// runs in one database transaction and row-locks the item before the
// membership so concurrent operations on the same pair serialize instead of
// deadlocking.
type TransactionService struct {
	repo       repository.RepositoryInterface
	cache      cache.Cache
	ratePerDay decimal.Decimal
}

// NewService creates a new lending lifecycle service. ratePerDay is the fine
// charged per day (or part of a day) an item is returned late.
func NewService(repo repository.RepositoryInterface, cache cache.Cache, ratePerDay decimal.Decimal) ServiceInterface {
	return &TransactionService{
		repo:       repo,
		cache:      cache,
		ratePerDay: ratePerDay,
	}
}

// Issue implements ServiceInterface.Issue.
func (s *TransactionService) Issue(ctx context.Context, principal auth.Principal, req *model.IssueRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	var created *model.Transaction
	err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
		item, err := s.repo.GetItemForUpdate(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		if item.Status != catalogmodel.StatusAvailable {
			return model.ErrItemNotAvailable
		}

		membership, err := s.repo.GetMembershipForUpdate(ctx, tx, req.MembershipID)
		if err != nil {
			return err
		}
		if membership.Status != membershipmodel.StatusActive {
			return model.ErrMembershipNotActive
		}

		if !principal.CanActOnMembership(membership.UserID) {
			return model.ErrForbidden
		}

		txn := &model.Transaction{
			ID:              uuid.New(),
			ItemID:          req.ItemID,
			MembershipID:    req.MembershipID,
			IssueDate:       now,
			ReturnDate:      req.ReturnDate,
			Status:          model.StatusActive,
			Fine:            decimal.Zero,
			FinePaid:        false,
			TransactionType: model.TypeIssue,
			CreatedBy:       principal.ID,
			CreatedAt:       now,
		}

		if err := s.repo.Create(ctx, tx, txn); err != nil {
			return err
		}
		if err := s.repo.UpdateItemStatus(ctx, tx, req.ItemID, catalogmodel.StatusIssued); err != nil {
			return err
		}

		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItemCache(ctx, req.ItemID)

	return s.loadResponse(ctx, created.ID)
}

// Return implements ServiceInterface.Return.
func (s *TransactionService) Return(ctx context.Context, principal auth.Principal, req *model.ReturnRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var settled *model.Transaction
	err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.repo.GetForUpdate(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		if txn.Status == model.StatusReturned {
			return model.ErrAlreadyReturned
		}

		item, err := s.repo.GetItemForUpdate(ctx, tx, txn.ItemID)
		if err != nil {
			return err
		}
		membership, err := s.repo.GetMembershipForUpdate(ctx, tx, txn.MembershipID)
		if err != nil {
			return err
		}

		if !principal.CanActOnMembership(membership.UserID) {
			return model.ErrForbidden
		}

		now := time.Now()
		fine := model.CalculateFine(txn.ReturnDate, now, s.ratePerDay)

		txn.ActualReturnDate = &now
		txn.Status = model.StatusReturned
		txn.Fine = fine

		if err := s.repo.UpdateOnReturn(ctx, tx, txn); err != nil {
			return err
		}
		if fine.IsPositive() {
			if err := s.repo.AdjustMembershipFine(ctx, tx, membership.ID, fine); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateItemStatus(ctx, tx, item.ID, catalogmodel.StatusAvailable); err != nil {
			return err
		}

		settled = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateItemCache(ctx, settled.ItemID)

	return s.loadResponse(ctx, settled.ID)
}

// PayFine implements ServiceInterface.PayFine.
func (s *TransactionService) PayFine(ctx context.Context, principal auth.Principal, req *model.PayFineRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var payment *model.Transaction
	err := s.repo.WithTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.repo.GetForUpdate(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		if txn.FinePaid {
			return model.ErrFineAlreadyPaid
		}
		if !txn.Fine.IsPositive() {
			return model.ErrNoFineDue
		}

		membership, err := s.repo.GetMembershipForUpdate(ctx, tx, txn.MembershipID)
		if err != nil {
			return err
		}

		if !principal.CanActOnMembership(membership.UserID) {
			return model.ErrForbidden
		}

		now := time.Now()

		// The payment entry carries the paid amount negated so summing a
		// membership's ledger nets charges against payments.
		entry := &model.Transaction{
			ID:               uuid.New(),
			ItemID:           txn.ItemID,
			MembershipID:     txn.MembershipID,
			IssueDate:        now,
			ReturnDate:       now,
			ActualReturnDate: &now,
			Status:           model.StatusReturned,
			Fine:             txn.Fine.Neg(),
			FinePaid:         true,
			TransactionType:  model.TypePayFine,
			CreatedBy:        principal.ID,
			CreatedAt:        now,
		}

		if err := s.repo.Create(ctx, tx, entry); err != nil {
			return err
		}
		if err := s.repo.MarkFinePaid(ctx, tx, txn.ID, now, entry.ID); err != nil {
			return err
		}
		if err := s.repo.AdjustMembershipFine(ctx, tx, membership.ID, txn.Fine.Neg()); err != nil {
			return err
		}

		payment = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, payment.ID)
}

// ListOverdue implements ServiceInterface.ListOverdue.
func (s *TransactionService) ListOverdue(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error) {
	now := time.Now()

	transactions, err := s.repo.ListOverdue(ctx, scopeOwner(principal), now)
	if err != nil {
		return nil, err
	}

	responses := model.ToResponseList(transactions)
	for i := range responses {
		calculated := model.CalculateFine(responses[i].ReturnDate, now, s.ratePerDay)
		responses[i].CalculatedFine = &calculated
	}

	return responses, nil
}

// ListActive implements ServiceInterface.ListActive.
func (s *TransactionService) ListActive(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error) {
	transactions, err := s.repo.ListActive(ctx, scopeOwner(principal))
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(transactions), nil
}

// List implements ServiceInterface.List.
func (s *TransactionService) List(ctx context.Context, principal auth.Principal, req *model.ListTransactionsRequest) ([]model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.repo.List(ctx, *req, scopeOwner(principal))
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(transactions), nil
}

// GetTransaction implements ServiceInterface.GetTransaction.
func (s *TransactionService) GetTransaction(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.TransactionResponse, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if txn.Membership == nil || txn.Membership.User == nil ||
		!principal.CanActOnMembership(txn.Membership.User.ID) {
		return nil, model.ErrForbidden
	}

	res := txn.ToResponse()
	return &res, nil
}

// scopeOwner returns the owner filter for list queries: nil for admins (see
// everything), the caller's id otherwise.
func scopeOwner(principal auth.Principal) *uuid.UUID {
	if principal.IsAdmin() {
		return nil
	}
	id := principal.ID
	return &id
}

func (s *TransactionService) loadResponse(ctx context.Context, id uuid.UUID) (*model.TransactionResponse, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := txn.ToResponse()
	return &res, nil
}

// invalidateItemCache drops the cached item and every cached list page
// after the item's status flipped. A failed invalidation only risks a
// short-lived stale read, so it is logged and not surfaced.
func (s *TransactionService) invalidateItemCache(ctx context.Context, itemID uuid.UUID) {
	if err := s.cache.Delete(ctx, catalogrepo.ItemCacheKey(itemID)); err != nil {
		logger.Error("failed to invalidate item cache", err)
	}
	if err := s.cache.DeletePattern(ctx, catalogrepo.ItemListPattern); err != nil {
		logger.Error("failed to invalidate item list cache", err)
	}
}
