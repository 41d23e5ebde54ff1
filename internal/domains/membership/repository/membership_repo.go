package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/membership/model"
)

// postgresRepository implements RepositoryInterface on PostgreSQL.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL membership repository.
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const membershipWithOwnerQuery = `
	SELECT m.id, m.membership_number, m.user_id, m.start_date, m.end_date,
		m.status, m.membership_type, m.fine_amount, m.created_at, m.updated_at,
		u.id, u.username, u.name, u.email
	FROM memberships m
	JOIN users u ON u.id = m.user_id
`

func scanMembershipWithOwner(row pgx.Row) (*model.Membership, error) {
	var m model.Membership
	var owner model.OwnerSummary

	err := row.Scan(
		&m.ID,
		&m.MembershipNumber,
		&m.UserID,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.MembershipType,
		&m.FineAmount,
		&m.CreatedAt,
		&m.UpdatedAt,
		&owner.ID,
		&owner.Username,
		&owner.Name,
		&owner.Email,
	)
	if err != nil {
		return nil, err
	}

	m.Owner = &owner
	return &m, nil
}

// Create implements RepositoryInterface.Create.
func (r *postgresRepository) Create(ctx context.Context, m *model.Membership) error {
	query := `
		INSERT INTO memberships (
			id, membership_number, user_id, start_date, end_date, status,
			membership_type, fine_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.MembershipNumber,
		m.UserID,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.MembershipType,
		m.FineAmount,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return model.ErrMembershipNumberExists
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return model.ErrUserNotFound
			}
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Membership, error) {
	query := membershipWithOwnerQuery + ` WHERE m.id = $1`

	m, err := scanMembershipWithOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewMembershipNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get membership by id: %w", err)
	}

	return m, nil
}

// ListByUser implements RepositoryInterface.ListByUser.
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	query := membershipWithOwnerQuery + ` WHERE m.user_id = $1 ORDER BY m.created_at DESC`

	return r.queryMemberships(ctx, query, userID)
}

// List implements RepositoryInterface.List.
func (r *postgresRepository) List(ctx context.Context) ([]model.Membership, error) {
	query := membershipWithOwnerQuery + ` ORDER BY m.created_at DESC`

	return r.queryMemberships(ctx, query)
}

func (r *postgresRepository) queryMemberships(ctx context.Context, query string, args ...interface{}) ([]model.Membership, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []model.Membership
	for rows.Next() {
		m, err := scanMembershipWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership rows: %w", err)
	}

	return memberships, nil
}

// Update implements RepositoryInterface.Update. The fine balance is not
// written here; it belongs to the lending lifecycle.
func (r *postgresRepository) Update(ctx context.Context, m *model.Membership) error {
	query := `
		UPDATE memberships
		SET membership_number = $2, start_date = $3, end_date = $4,
			status = $5, membership_type = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		m.ID,
		m.MembershipNumber,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.MembershipType,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrMembershipNumberExists
		}
		return fmt.Errorf("failed to update membership: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewMembershipNotFoundError(m.ID)
	}

	return nil
}

// Delete implements RepositoryInterface.Delete.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewMembershipNotFoundError(id)
	}

	return nil
}

// CountActiveTransactions implements RepositoryInterface.CountActiveTransactions.
func (r *postgresRepository) CountActiveTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE membership_id = $1 AND status = 'active'`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active transactions: %w", err)
	}

	return count, nil
}
