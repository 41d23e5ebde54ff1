package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the authoritative availability state of an item.
type ItemStatus string

const (
	StatusAvailable        ItemStatus = "available"
	StatusIssued           ItemStatus = "issued"
	StatusUnderMaintenance ItemStatus = "under_maintenance"
	StatusLost             ItemStatus = "lost"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusIssued, StatusUnderMaintenance, StatusLost:
		return true
	}
	return false
}

func (s ItemStatus) String() string {
	return string(s)
}

// ItemKind distinguishes books from movies.
type ItemKind string

const (
	KindBook  ItemKind = "book"
	KindMovie ItemKind = "movie"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindBook, KindMovie:
		return true
	}
	return false
}

func (k ItemKind) String() string {
	return string(k)
}

// Item represents a lendable catalog entry (book or movie).
type Item struct {
	ID              uuid.UUID       `db:"id"`
	SerialNumber    string          `db:"serial_number"`
	Title           string          `db:"title"`
	Creator         string          `db:"creator"` // author or director
	Category        string          `db:"category"`
	ItemKind        ItemKind        `db:"item_kind"`
	Cost            decimal.Decimal `db:"cost"`
	AcquisitionDate time.Time       `db:"acquisition_date"`
	Description     *string         `db:"description"`
	Status          ItemStatus      `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// IsAvailable is derived from Status; it is never stored, so the two can
// never diverge.
func (i *Item) IsAvailable() bool {
	return i.Status == StatusAvailable
}

// ToResponse converts the entity to its API representation.
func (i *Item) ToResponse() ItemResponse {
	return ItemResponse{
		ID:              i.ID,
		SerialNumber:    i.SerialNumber,
		Title:           i.Title,
		Creator:         i.Creator,
		Category:        i.Category,
		ItemKind:        i.ItemKind.String(),
		Cost:            i.Cost,
		AcquisitionDate: i.AcquisitionDate,
		Description:     i.Description,
		Status:          i.Status.String(),
		IsAvailable:     i.IsAvailable(),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// ToResponseList converts a slice of entities.
func ToResponseList(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToResponse())
	}
	return out
}
