package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipStatus represents the lifecycle state of a membership.
type MembershipStatus string

const (
	StatusActive   MembershipStatus = "active"
	StatusInactive MembershipStatus = "inactive"
	StatusExpired  MembershipStatus = "expired"
)

func (s MembershipStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusExpired:
		return true
	}
	return false
}

func (s MembershipStatus) String() string {
	return string(s)
}

// MembershipType distinguishes pricing tiers.
type MembershipType string

const (
	TypeStandard MembershipType = "standard"
	TypePremium  MembershipType = "premium"
)

func (t MembershipType) IsValid() bool {
	switch t {
	case TypeStandard, TypePremium:
		return true
	}
	return false
}

func (t MembershipType) String() string {
	return string(t)
}

// Membership represents a borrowing entitlement tied to one user.
// FineAmount is the accrued unpaid fine balance; it is mutated only by the
// lending lifecycle and never goes negative.
type Membership struct {
	ID               uuid.UUID        `db:"id"`
	MembershipNumber string           `db:"membership_number"`
	UserID           uuid.UUID        `db:"user_id"`
	StartDate        time.Time        `db:"start_date"`
	EndDate          time.Time        `db:"end_date"`
	Status           MembershipStatus `db:"status"`
	MembershipType   MembershipType   `db:"membership_type"`
	FineAmount       decimal.Decimal  `db:"fine_amount"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`

	// Owner is the joined user summary, populated by list/get queries for
	// display; nil when the query did not join.
	Owner *OwnerSummary `db:"-"`
}

// OwnerSummary is the denormalized owning-user info attached to membership
// and transaction responses.
type OwnerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

// ToResponse converts the entity to its API representation.
func (m *Membership) ToResponse() MembershipResponse {
	return MembershipResponse{
		ID:               m.ID,
		MembershipNumber: m.MembershipNumber,
		UserID:           m.UserID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           m.Status.String(),
		MembershipType:   m.MembershipType.String(),
		FineAmount:       m.FineAmount,
		User:             m.Owner,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToResponseList converts a slice of entities.
func ToResponseList(memberships []Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(memberships))
	for i := range memberships {
		out = append(out, memberships[i].ToResponse())
	}
	return out
}
