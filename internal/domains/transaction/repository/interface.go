package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	catalogmodel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/transaction/model"
)

// RepositoryInterface defines ledger data access. Lifecycle mutations take a
// pgx.Tx so the service can run each operation inside one database
// transaction; list and get queries run against the pool and join the item,
// membership and owning user for display.
type RepositoryInterface interface {
	// WithTx runs fn inside one database transaction, rolling back when fn
	// errors.
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error

	// Create appends a ledger entry.
	Create(ctx context.Context, tx pgx.Tx, t *model.Transaction) error

	// GetByID fetches a transaction with item and membership joined.
	// Returns model.ErrTransactionNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)

	// GetForUpdate fetches and row-locks a transaction inside tx, without
	// joins. Returns model.ErrTransactionNotFound if not exists.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Transaction, error)

	// UpdateOnReturn persists the settlement fields of a return:
	// actual_return_date, status and fine.
	UpdateOnReturn(ctx context.Context, tx pgx.Tx, t *model.Transaction) error

	// MarkFinePaid flags the original transaction paid and links it to the
	// payment entry that settled it.
	MarkFinePaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, paidAt time.Time, paidBy uuid.UUID) error

	// GetItemForUpdate fetches and row-locks the item inside tx.
	// Returns model.ErrItemNotFound if not exists.
	GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*model.ItemState, error)

	// UpdateItemStatus flips the item's lending status inside tx.
	UpdateItemStatus(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, status catalogmodel.ItemStatus) error

	// GetMembershipForUpdate fetches and row-locks the membership inside tx.
	// Returns model.ErrMembershipNotFound if not exists.
	GetMembershipForUpdate(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID) (*model.MembershipState, error)

	// AdjustMembershipFine adds delta to the membership's fine balance,
	// clamped so the balance never goes below zero.
	AdjustMembershipFine(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID, delta decimal.Decimal) error

	// ListOverdue fetches transactions that are past due as of now: those
	// explicitly marked overdue plus active ones whose due date has
	// passed, ordered by due date ascending. A non-nil ownerID restricts
	// the result to memberships owned by that user.
	ListOverdue(ctx context.Context, ownerID *uuid.UUID, now time.Time) ([]model.Transaction, error)

	// ListActive fetches active transactions ordered by due date
	// ascending, optionally restricted to an owner.
	ListActive(ctx context.Context, ownerID *uuid.UUID) ([]model.Transaction, error)

	// List fetches ledger history newest first with optional filters,
	// optionally restricted to an owner.
	List(ctx context.Context, req model.ListTransactionsRequest, ownerID *uuid.UUID) ([]model.Transaction, error)
}
