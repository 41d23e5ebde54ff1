package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/catalog/model"
	"library-backend/pkg/cache"
)

// itemCacheTTL bounds staleness for cached item reads. Writes invalidate
// eagerly; the TTL is a backstop.
const itemCacheTTL = 5 * time.Minute

const itemListKeyPrefix = "items:list:"

// ItemListPattern matches every cached list page. Exported so the lending
// lifecycle can drop list caches when it flips item status.
const ItemListPattern = itemListKeyPrefix + "*"

// ItemCacheKey returns the cache key for a single item. Exported so the
// lending lifecycle can invalidate entries when it flips item status.
func ItemCacheKey(id uuid.UUID) string {
	return "item:" + id.String()
}

func itemListCacheKey(req model.ListItemsRequest) string {
	available := ""
	if req.Available != nil {
		available = fmt.Sprintf("%t", *req.Available)
	}
	return fmt.Sprintf("%s%s|%s|%s|%s|%s|%s|%d|%d",
		itemListKeyPrefix,
		req.Title, req.Creator, req.Category, req.Status, req.ItemKind,
		available, req.Page, req.Limit)
}

// itemListPage is the cached shape of one List result.
type itemListPage struct {
	Items []model.Item `json:"items"`
	Total int          `json:"total"`
}

// postgresRepository implements RepositoryInterface on PostgreSQL with a
// Redis read-through cache for single-item lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewRepository creates a new PostgreSQL catalog repository.
func NewRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const itemColumns = `id, serial_number, title, creator, category, item_kind, cost,
	acquisition_date, description, status, created_at, updated_at`

func scanItem(row pgx.Row) (*model.Item, error) {
	var item model.Item
	err := row.Scan(
		&item.ID,
		&item.SerialNumber,
		&item.Title,
		&item.Creator,
		&item.Category,
		&item.ItemKind,
		&item.Cost,
		&item.AcquisitionDate,
		&item.Description,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create implements RepositoryInterface.Create.
func (r *postgresRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (
			id, serial_number, title, creator, category, item_kind, cost,
			acquisition_date, description, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.SerialNumber,
		item.Title,
		item.Creator,
		item.Category,
		item.ItemKind,
		item.Cost,
		item.AcquisitionDate,
		item.Description,
		item.Status,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrSerialNumberExists
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	r.invalidateLists(ctx)
	return nil
}

// GetByID implements RepositoryInterface.GetByID with a read-through cache.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	key := ItemCacheKey(id)

	var cached model.Item
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache trouble must not fail reads; fall through to the database.
		log.Warn().Err(err).Str("key", key).Msg("item cache read failed")
	}
	if found {
		return &cached, nil
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewItemNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	if err := r.cache.Set(ctx, key, item, itemCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("item cache write failed")
	}

	return item, nil
}

// GetBySerialNumber implements RepositoryInterface.GetBySerialNumber.
func (r *postgresRepository) GetBySerialNumber(ctx context.Context, serialNumber string) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE serial_number = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, serialNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by serial number: %w", err)
	}

	return item, nil
}

// List implements RepositoryInterface.List with dynamic filters. Pages are
// cached per filter combination; any item write drops the whole set.
func (r *postgresRepository) List(ctx context.Context, req model.ListItemsRequest) ([]model.Item, int, error) {
	key := itemListCacheKey(req)

	var page itemListPage
	found, err := r.cache.Get(ctx, key, &page)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("item list cache read failed")
	}
	if found {
		return page.Items, page.Total, nil
	}

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	addFilter := func(clause string, value interface{}) {
		where += fmt.Sprintf(clause, argPos)
		args = append(args, value)
		argPos++
	}

	if req.Title != "" {
		addFilter(` AND title ILIKE $%d`, "%"+req.Title+"%")
	}
	if req.Creator != "" {
		addFilter(` AND creator ILIKE $%d`, "%"+req.Creator+"%")
	}
	if req.Category != "" {
		addFilter(` AND category ILIKE $%d`, "%"+req.Category+"%")
	}
	if req.Status != "" {
		addFilter(` AND status = $%d`, req.Status)
	}
	if req.ItemKind != "" {
		addFilter(` AND item_kind = $%d`, req.ItemKind)
	}
	if req.Available != nil {
		if *req.Available {
			where += ` AND status = 'available'`
		} else {
			where += ` AND status <> 'available'`
		}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM items` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	listQuery := `SELECT ` + itemColumns + ` FROM items` + where +
		fmt.Sprintf(` ORDER BY title ASC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate item rows: %w", err)
	}

	if err := r.cache.Set(ctx, key, itemListPage{Items: items, Total: total}, itemCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("item list cache write failed")
	}

	return items, total, nil
}

// Update implements RepositoryInterface.Update.
func (r *postgresRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET serial_number = $2, title = $3, creator = $4, category = $5,
			item_kind = $6, cost = $7, acquisition_date = $8, description = $9,
			status = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID,
		item.SerialNumber,
		item.Title,
		item.Creator,
		item.Category,
		item.ItemKind,
		item.Cost,
		item.AcquisitionDate,
		item.Description,
		item.Status,
		item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrSerialNumberExists
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewItemNotFoundError(item.ID)
	}

	r.invalidate(ctx, item.ID)
	return nil
}

// Delete implements RepositoryInterface.Delete.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewItemNotFoundError(id)
	}

	r.invalidate(ctx, id)
	return nil
}

// CountActiveTransactions implements RepositoryInterface.CountActiveTransactions.
func (r *postgresRepository) CountActiveTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE item_id = $1 AND status = 'active'`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active transactions: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, ItemCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("item_id", id.String()).Msg("item cache invalidation failed")
	}
	r.invalidateLists(ctx)
}

func (r *postgresRepository) invalidateLists(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, ItemListPattern); err != nil {
		log.Warn().Err(err).Msg("item list cache invalidation failed")
	}
}
