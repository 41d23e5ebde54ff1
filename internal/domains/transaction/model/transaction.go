package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a lending transaction.
type TransactionStatus string

const (
	StatusActive   TransactionStatus = "active"
	StatusReturned TransactionStatus = "returned"
	StatusOverdue  TransactionStatus = "overdue"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}

// TransactionType classifies the event a ledger record describes.
type TransactionType string

const (
	TypeIssue   TransactionType = "issue"
	TypeReturn  TransactionType = "return"
	TypeRenew   TransactionType = "renew"
	TypePayFine TransactionType = "payfine"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIssue, TypeReturn, TypeRenew, TypePayFine:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

// Transaction is one entry in the lending ledger: an issue, a return, or a
// fine payment against one item/membership pair. Settled records are never
// reclassified; a fine payment is recorded by appending a payment entry and
// linking the original record to it via PaidByTransactionID.
type Transaction struct {
	ID                  uuid.UUID         `db:"id"`
	ItemID              uuid.UUID         `db:"item_id"`
	MembershipID        uuid.UUID         `db:"membership_id"`
	IssueDate           time.Time         `db:"issue_date"`
	ReturnDate          time.Time         `db:"return_date"` // due date, set at issue
	ActualReturnDate    *time.Time        `db:"actual_return_date"`
	Status              TransactionStatus `db:"status"`
	Fine                decimal.Decimal   `db:"fine"`
	FinePaid            bool              `db:"fine_paid"`
	TransactionType     TransactionType   `db:"transaction_type"`
	PaidAt              *time.Time        `db:"paid_at"`
	PaidByTransactionID *uuid.UUID        `db:"paid_by_transaction_id"`
	CreatedBy           uuid.UUID         `db:"created_by"`
	CreatedAt           time.Time         `db:"created_at"`

	// Item and Membership are joined summaries for display, populated by
	// read queries; nil when the query did not join.
	Item       *ItemSummary       `db:"-"`
	Membership *MembershipSummary `db:"-"`
}

// IsPayment reports whether the record is a payment entry appended by a
// fine payment. Payment entries carry the paid amount negated; classify by
// type, never by sign alone.
func (t *Transaction) IsPayment() bool {
	return t.TransactionType == TypePayFine && t.Fine.IsNegative()
}

// ItemSummary is the denormalized item info attached to responses.
type ItemSummary struct {
	ID           uuid.UUID `json:"id"`
	SerialNumber string    `json:"serial_number"`
	Title        string    `json:"title"`
	Creator      string    `json:"creator"`
	ItemKind     string    `json:"item_kind"`
	Status       string    `json:"status"`
}

// MembershipSummary is the denormalized membership info attached to
// responses, including the owning user.
type MembershipSummary struct {
	ID               uuid.UUID    `json:"id"`
	MembershipNumber string       `json:"membership_number"`
	Status           string       `json:"status"`
	User             *UserSummary `json:"user,omitempty"`
}

// UserSummary is the owning user attached to a membership summary.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

// ToResponse converts the entity to its API representation.
func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID,
		ItemID:              t.ItemID,
		MembershipID:        t.MembershipID,
		IssueDate:           t.IssueDate,
		ReturnDate:          t.ReturnDate,
		ActualReturnDate:    t.ActualReturnDate,
		Status:              t.Status.String(),
		Fine:                t.Fine,
		FinePaid:            t.FinePaid,
		TransactionType:     t.TransactionType.String(),
		PaidAt:              t.PaidAt,
		PaidByTransactionID: t.PaidByTransactionID,
		CreatedBy:           t.CreatedBy,
		CreatedAt:           t.CreatedAt,
		Item:                t.Item,
		Membership:          t.Membership,
	}
}

// ToResponseList converts a slice of entities.
func ToResponseList(transactions []Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, transactions[i].ToResponse())
	}
	return out
}
