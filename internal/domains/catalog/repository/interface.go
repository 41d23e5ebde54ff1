package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// RepositoryInterface defines catalog data access.
type RepositoryInterface interface {
	// Create inserts a new item.
	// Returns model.ErrSerialNumberExists on duplicate serial number.
	Create(ctx context.Context, item *model.Item) error

	// GetByID fetches an item, serving reads through the cache.
	// Returns model.ErrItemNotFound if not exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)

	// GetBySerialNumber fetches an item by its unique business key.
	// Returns model.ErrItemNotFound if not exists.
	GetBySerialNumber(ctx context.Context, serialNumber string) (*model.Item, error)

	// List retrieves items matching the filters, ordered by title, with
	// the total match count for pagination.
	List(ctx context.Context, req model.ListItemsRequest) ([]model.Item, int, error)

	// Update persists the full item record and invalidates its cache entry.
	// Returns model.ErrItemNotFound if not exists,
	// model.ErrSerialNumberExists on duplicate serial number.
	Update(ctx context.Context, item *model.Item) error

	// Delete removes an item and invalidates its cache entry.
	// Returns model.ErrItemNotFound if not exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountActiveTransactions reports how many active loans reference the
	// item; used to refuse deletes that would orphan live loans.
	CountActiveTransactions(ctx context.Context, id uuid.UUID) (int, error)
}
