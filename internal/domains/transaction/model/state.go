package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodel "library-backend/internal/domains/catalog/model"
	membershipmodel "library-backend/internal/domains/membership/model"
)

// ItemState is the minimal item row the lifecycle engine locks and mutates.
type ItemState struct {
	ID     uuid.UUID
	Status catalogmodel.ItemStatus
}

// MembershipState is the minimal membership row the lifecycle engine locks
// and mutates.
type MembershipState struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     membershipmodel.MembershipStatus
	FineAmount decimal.Decimal
}
