package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// ServiceInterface defines catalog business logic.
type ServiceInterface interface {
	// CreateItem creates a catalog item (admin workflow).
	// Returns model.ErrSerialNumberExists on duplicate serial number,
	// model.ErrStatusReserved if the request tries to create an issued item.
	CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.ItemResponse, error)

	// GetItemByID retrieves a single item.
	// Returns model.ErrItemNotFound if not exists.
	GetItemByID(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error)

	// CheckBySerialNumber answers the public availability check.
	// Returns model.ErrItemNotFound if not exists.
	CheckBySerialNumber(ctx context.Context, serialNumber string) (*model.CheckSerialResponse, error)

	// ListItems retrieves the paginated catalog with search filters.
	ListItems(ctx context.Context, req model.ListItemsRequest) (*model.ListItemsResponse, error)

	// UpdateItem updates non-nil fields. Status may not be set to issued
	// here, and an item currently on loan may not have its status edited.
	UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error)

	// DeleteItem removes an item unless active loans reference it.
	// Returns model.ErrItemOnLoan in that case.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
