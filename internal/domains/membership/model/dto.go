package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipResponse is the API representation of a membership.
type MembershipResponse struct {
	ID               uuid.UUID       `json:"id"`
	MembershipNumber string          `json:"membership_number"`
	UserID           uuid.UUID       `json:"user_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Status           string          `json:"status"`
	MembershipType   string          `json:"membership_type"`
	FineAmount       decimal.Decimal `json:"fine_amount"`
	User             *OwnerSummary   `json:"user,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreateMembershipRequest creates a membership (admin workflow).
type CreateMembershipRequest struct {
	MembershipNumber string     `json:"membership_number"`
	UserID           uuid.UUID  `json:"user_id"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          time.Time  `json:"end_date"`
	Status           string     `json:"status,omitempty"`
	MembershipType   string     `json:"membership_type,omitempty"`
}

func (r CreateMembershipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MembershipNumber,
			validation.Required.Error("membership number is required"),
			validation.Length(1, 50),
		),
		validation.Field(&r.UserID,
			validation.By(requiredUUID("user_id")),
		),
		validation.Field(&r.EndDate,
			validation.Required.Error("end date is required"),
		),
		validation.Field(&r.Status,
			validation.In("",
				StatusActive.String(),
				StatusInactive.String(),
				StatusExpired.String(),
			).Error("status must be active, inactive or expired"),
		),
		validation.Field(&r.MembershipType,
			validation.In("", TypeStandard.String(), TypePremium.String()).
				Error("membership type must be standard or premium"),
		),
	)
}

// UpdateMembershipRequest updates a membership; only non-nil fields are
// applied. FineAmount is deliberately absent: the fine balance is owned by
// the lending lifecycle.
type UpdateMembershipRequest struct {
	MembershipNumber *string    `json:"membership_number,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	MembershipType   *string    `json:"membership_type,omitempty"`
}

func (r UpdateMembershipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MembershipNumber, validation.NilOrNotEmpty, validation.Length(1, 50)),
	)
}

func requiredUUID(field string) validation.RuleFunc {
	return func(value interface{}) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError("validation_required", field+" is required")
		}
		return nil
	}
}
