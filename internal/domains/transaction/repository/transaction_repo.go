package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	catalogmodel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/transaction/model"
	"library-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on PostgreSQL.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL transaction repository.
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// WithTx implements RepositoryInterface.WithTx.
func (r *postgresRepository) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return database.WithTransaction(ctx, r.pool, fn)
}

const transactionColumns = `t.id, t.item_id, t.membership_id, t.issue_date, t.return_date,
	t.actual_return_date, t.status, t.fine, t.fine_paid, t.transaction_type,
	t.paid_at, t.paid_by_transaction_id, t.created_by, t.created_at`

const transactionWithJoinsQuery = `
	SELECT ` + transactionColumns + `,
		i.id, i.serial_number, i.title, i.creator, i.item_kind, i.status,
		m.id, m.membership_number, m.status,
		u.id, u.username, u.name, u.email
	FROM transactions t
	JOIN items i ON i.id = t.item_id
	JOIN memberships m ON m.id = t.membership_id
	JOIN users u ON u.id = m.user_id
`

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction

	err := row.Scan(
		&t.ID,
		&t.ItemID,
		&t.MembershipID,
		&t.IssueDate,
		&t.ReturnDate,
		&t.ActualReturnDate,
		&t.Status,
		&t.Fine,
		&t.FinePaid,
		&t.TransactionType,
		&t.PaidAt,
		&t.PaidByTransactionID,
		&t.CreatedBy,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func scanTransactionWithJoins(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction
	var item model.ItemSummary
	var membership model.MembershipSummary
	var user model.UserSummary

	err := row.Scan(
		&t.ID,
		&t.ItemID,
		&t.MembershipID,
		&t.IssueDate,
		&t.ReturnDate,
		&t.ActualReturnDate,
		&t.Status,
		&t.Fine,
		&t.FinePaid,
		&t.TransactionType,
		&t.PaidAt,
		&t.PaidByTransactionID,
		&t.CreatedBy,
		&t.CreatedAt,
		&item.ID,
		&item.SerialNumber,
		&item.Title,
		&item.Creator,
		&item.ItemKind,
		&item.Status,
		&membership.ID,
		&membership.MembershipNumber,
		&membership.Status,
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
	)
	if err != nil {
		return nil, err
	}

	membership.User = &user
	t.Item = &item
	t.Membership = &membership
	return &t, nil
}

// Create implements RepositoryInterface.Create.
func (r *postgresRepository) Create(ctx context.Context, tx pgx.Tx, t *model.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, item_id, membership_id, issue_date, return_date,
			actual_return_date, status, fine, fine_paid, transaction_type,
			paid_at, paid_by_transaction_id, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := tx.Exec(ctx, query,
		t.ID,
		t.ItemID,
		t.MembershipID,
		t.IssueDate,
		t.ReturnDate,
		t.ActualReturnDate,
		t.Status,
		t.Fine,
		t.FinePaid,
		t.TransactionType,
		t.PaidAt,
		t.PaidByTransactionID,
		t.CreatedBy,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	query := transactionWithJoinsQuery + ` WHERE t.id = $1`

	t, err := scanTransactionWithJoins(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTransactionNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get transaction by id: %w", err)
	}

	return t, nil
}

// GetForUpdate implements RepositoryInterface.GetForUpdate.
func (r *postgresRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Transaction, error) {
	query := `
		SELECT id, item_id, membership_id, issue_date, return_date,
			actual_return_date, status, fine, fine_paid, transaction_type,
			paid_at, paid_by_transaction_id, created_by, created_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	t, err := scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTransactionNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}

	return t, nil
}

// UpdateOnReturn implements RepositoryInterface.UpdateOnReturn.
func (r *postgresRepository) UpdateOnReturn(ctx context.Context, tx pgx.Tx, t *model.Transaction) error {
	query := `
		UPDATE transactions
		SET actual_return_date = $2, status = $3, fine = $4
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, t.ID, t.ActualReturnDate, t.Status, t.Fine)
	if err != nil {
		return fmt.Errorf("failed to settle transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewTransactionNotFoundError(t.ID)
	}

	return nil
}

// MarkFinePaid implements RepositoryInterface.MarkFinePaid.
func (r *postgresRepository) MarkFinePaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, paidAt time.Time, paidBy uuid.UUID) error {
	query := `
		UPDATE transactions
		SET fine_paid = true, paid_at = $2, paid_by_transaction_id = $3
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, paidAt, paidBy)
	if err != nil {
		return fmt.Errorf("failed to mark fine paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewTransactionNotFoundError(id)
	}

	return nil
}

// GetItemForUpdate implements RepositoryInterface.GetItemForUpdate.
func (r *postgresRepository) GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*model.ItemState, error) {
	var state model.ItemState

	err := tx.QueryRow(ctx, `SELECT id, status FROM items WHERE id = $1 FOR UPDATE`, itemID).
		Scan(&state.ID, &state.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to lock item: %w", err)
	}

	return &state, nil
}

// UpdateItemStatus implements RepositoryInterface.UpdateItemStatus.
func (r *postgresRepository) UpdateItemStatus(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, status catalogmodel.ItemStatus) error {
	query := `UPDATE items SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, itemID, status)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// GetMembershipForUpdate implements RepositoryInterface.GetMembershipForUpdate.
func (r *postgresRepository) GetMembershipForUpdate(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID) (*model.MembershipState, error) {
	var state model.MembershipState

	query := `SELECT id, user_id, status, fine_amount FROM memberships WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(ctx, query, membershipID).
		Scan(&state.ID, &state.UserID, &state.Status, &state.FineAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to lock membership: %w", err)
	}

	return &state, nil
}

// AdjustMembershipFine implements RepositoryInterface.AdjustMembershipFine.
// The clamp lives in SQL so the balance can never be driven negative.
func (r *postgresRepository) AdjustMembershipFine(ctx context.Context, tx pgx.Tx, membershipID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE memberships
		SET fine_amount = GREATEST(fine_amount + $2, 0), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, membershipID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust membership fine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMembershipNotFound
	}

	return nil
}

// ListOverdue implements RepositoryInterface.ListOverdue. The overdue set is
// the union of rows explicitly marked overdue and active rows past their due
// date; a single WHERE covers both without duplicates.
func (r *postgresRepository) ListOverdue(ctx context.Context, ownerID *uuid.UUID, now time.Time) ([]model.Transaction, error) {
	query := transactionWithJoinsQuery +
		` WHERE (t.status = 'overdue' OR (t.status = 'active' AND t.return_date < $1))`
	args := []interface{}{now}

	if ownerID != nil {
		query += ` AND m.user_id = $2`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY t.return_date ASC`

	return r.queryTransactions(ctx, query, args...)
}

// ListActive implements RepositoryInterface.ListActive.
func (r *postgresRepository) ListActive(ctx context.Context, ownerID *uuid.UUID) ([]model.Transaction, error) {
	query := transactionWithJoinsQuery + ` WHERE t.status = 'active'`
	var args []interface{}

	if ownerID != nil {
		query += ` AND m.user_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY t.return_date ASC`

	return r.queryTransactions(ctx, query, args...)
}

// List implements RepositoryInterface.List.
func (r *postgresRepository) List(ctx context.Context, req model.ListTransactionsRequest, ownerID *uuid.UUID) ([]model.Transaction, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if req.Status != "" {
		addCondition("t.status = $%d", req.Status)
	}
	if req.TransactionType != "" {
		addCondition("t.transaction_type = $%d", req.TransactionType)
	}
	if req.ItemID != "" {
		addCondition("t.item_id = $%d", req.ItemID)
	}
	if req.MembershipID != "" {
		addCondition("t.membership_id = $%d", req.MembershipID)
	}
	if ownerID != nil {
		addCondition("m.user_id = $%d", *ownerID)
	}

	query := transactionWithJoinsQuery
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY t.created_at DESC`

	return r.queryTransactions(ctx, query, args...)
}

func (r *postgresRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		t, err := scanTransactionWithJoins(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	return transactions, nil
}
