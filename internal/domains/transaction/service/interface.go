package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/transaction/model"
	"library-backend/internal/shared/auth"
)

// ServiceInterface is the lending lifecycle engine. Issue, Return and
// PayFine each run atomically: the ledger write and the item/membership
// updates commit or roll back together. All operations authorize the caller
// against the membership the loan belongs to.
type ServiceInterface interface {
	// Issue lends an available item to an active membership until the due
	// date and marks the item issued.
	Issue(ctx context.Context, principal auth.Principal, req *model.IssueRequest) (*model.TransactionResponse, error)

	// Return settles an active loan: stamps the actual return date,
	// computes the late fine, accrues it on the membership and makes the
	// item available again.
	Return(ctx context.Context, principal auth.Principal, req *model.ReturnRequest) (*model.TransactionResponse, error)

	// PayFine settles the fine on a returned transaction: flags it paid,
	// reduces the membership's fine balance and appends a payment entry to
	// the ledger. Returns the payment entry.
	PayFine(ctx context.Context, principal auth.Principal, req *model.PayFineRequest) (*model.TransactionResponse, error)

	// ListOverdue returns past-due transactions with a live calculated
	// fine projection, scoped to the caller's memberships unless admin.
	ListOverdue(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error)

	// ListActive returns active loans sorted by due date, scoped to the
	// caller's memberships unless admin.
	ListActive(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error)

	// List returns ledger history with optional filters, scoped to the
	// caller's memberships unless admin.
	List(ctx context.Context, principal auth.Principal, req *model.ListTransactionsRequest) ([]model.TransactionResponse, error)

	// GetTransaction fetches one transaction; non-admin callers may only
	// read transactions on memberships they own.
	GetTransaction(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.TransactionResponse, error)
}
