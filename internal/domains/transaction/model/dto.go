package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionResponse is the API representation of a ledger entry.
// CalculatedFine is a live projection for not-yet-returned transactions; it
// is never persisted.
type TransactionResponse struct {
	ID                  uuid.UUID          `json:"id"`
	ItemID              uuid.UUID          `json:"item_id"`
	MembershipID        uuid.UUID          `json:"membership_id"`
	IssueDate           time.Time          `json:"issue_date"`
	ReturnDate          time.Time          `json:"return_date"`
	ActualReturnDate    *time.Time         `json:"actual_return_date,omitempty"`
	Status              string             `json:"status"`
	Fine                decimal.Decimal    `json:"fine"`
	FinePaid            bool               `json:"fine_paid"`
	TransactionType     string             `json:"transaction_type"`
	PaidAt              *time.Time         `json:"paid_at,omitempty"`
	PaidByTransactionID *uuid.UUID         `json:"paid_by_transaction_id,omitempty"`
	CreatedBy           uuid.UUID          `json:"created_by"`
	CreatedAt           time.Time          `json:"created_at"`
	CalculatedFine      *decimal.Decimal   `json:"calculated_fine,omitempty"`
	Item                *ItemSummary       `json:"item,omitempty"`
	Membership          *MembershipSummary `json:"membership,omitempty"`
}

// IssueRequest lends an item to a membership until return_date.
type IssueRequest struct {
	ItemID       uuid.UUID `json:"item_id"`
	MembershipID uuid.UUID `json:"membership_id"`
	ReturnDate   time.Time `json:"return_date"`
}

func (r IssueRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID, validation.By(requiredUUID("item_id"))),
		validation.Field(&r.MembershipID, validation.By(requiredUUID("membership_id"))),
		validation.Field(&r.ReturnDate,
			validation.Required.Error("return date is required"),
		),
	)
}

// ReturnRequest settles an active loan.
type ReturnRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

func (r ReturnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TransactionID, validation.By(requiredUUID("transaction_id"))),
	)
}

// PayFineRequest settles the fine on a returned transaction.
type PayFineRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

func (r PayFineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TransactionID, validation.By(requiredUUID("transaction_id"))),
	)
}

// ListTransactionsRequest filters the ledger history.
type ListTransactionsRequest struct {
	Status          string `form:"status"`
	TransactionType string `form:"type"`
	ItemID          string `form:"item_id"`
	MembershipID    string `form:"membership_id"`
}

func (r ListTransactionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.In("",
				StatusActive.String(),
				StatusReturned.String(),
				StatusOverdue.String(),
			).Error("status must be active, returned or overdue"),
		),
		validation.Field(&r.TransactionType,
			validation.In("",
				TypeIssue.String(),
				TypeReturn.String(),
				TypeRenew.String(),
				TypePayFine.String(),
			).Error("type must be issue, return, renew or payfine"),
		),
		validation.Field(&r.ItemID, validation.By(optionalUUIDString("item_id"))),
		validation.Field(&r.MembershipID, validation.By(optionalUUIDString("membership_id"))),
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

func optionalUUIDString(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := uuid.Parse(s); err != nil {
			return validation.NewError("validation_uuid", field+" must be a valid UUID")
		}
		return nil
	}
}
