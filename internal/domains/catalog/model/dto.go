package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemResponse is the API representation of an item. IsAvailable is a
// derived field kept for front-end compatibility; Status stays the source
// of truth.
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	SerialNumber    string          `json:"serial_number"`
	Title           string          `json:"title"`
	Creator         string          `json:"creator"`
	Category        string          `json:"category"`
	ItemKind        string          `json:"item_kind"`
	Cost            decimal.Decimal `json:"cost"`
	AcquisitionDate time.Time       `json:"acquisition_date"`
	Description     *string         `json:"description,omitempty"`
	Status          string          `json:"status"`
	IsAvailable     bool            `json:"is_available"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateItemRequest creates a catalog item (admin only).
type CreateItemRequest struct {
	SerialNumber    string          `json:"serial_number"`
	Title           string          `json:"title"`
	Creator         string          `json:"creator"`
	Category        string          `json:"category"`
	ItemKind        string          `json:"item_kind"`
	Cost            decimal.Decimal `json:"cost"`
	AcquisitionDate *time.Time      `json:"acquisition_date,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Status          string          `json:"status,omitempty"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SerialNumber,
			validation.Required.Error("serial number is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Creator,
			validation.Required.Error("creator is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.ItemKind,
			validation.In("", KindBook.String(), KindMovie.String()).Error("item kind must be book or movie"),
		),
		validation.Field(&r.Status,
			validation.In("",
				StatusAvailable.String(),
				StatusUnderMaintenance.String(),
				StatusLost.String(),
			).Error("status must be available, under_maintenance or lost"),
		),
		validation.Field(&r.Cost,
			validation.By(nonNegativeDecimal("cost")),
		),
	)
}

// UpdateItemRequest updates an item; only non-nil fields are applied.
type UpdateItemRequest struct {
	SerialNumber    *string          `json:"serial_number,omitempty"`
	Title           *string          `json:"title,omitempty"`
	Creator         *string          `json:"creator,omitempty"`
	Category        *string          `json:"category,omitempty"`
	ItemKind        *string          `json:"item_kind,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	AcquisitionDate *time.Time       `json:"acquisition_date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Status          *string          `json:"status,omitempty"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SerialNumber, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Creator, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// ListItemsRequest carries catalog search filters and pagination.
type ListItemsRequest struct {
	Title     string `form:"title"`
	Creator   string `form:"creator"`
	Category  string `form:"category"`
	Status    string `form:"status"`
	ItemKind  string `form:"item_kind"`
	Available *bool  `form:"available"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
}

func (r *ListItemsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// ListItemsResponse is the paginated catalog listing.
type ListItemsResponse struct {
	Items      []ItemResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// CheckSerialResponse answers the availability check by serial number.
type CheckSerialResponse struct {
	Item        ItemResponse `json:"item"`
	IsAvailable bool         `json:"is_available"`
}

func nonNegativeDecimal(field string) validation.RuleFunc {
	return func(value interface{}) error {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return nil
		}
		if d.IsNegative() {
			return validation.NewError("validation_negative", field+" cannot be negative")
		}
		return nil
	}
}
