package models

import (
	"time"
)

const (
	PostingTypeIncome   = "income"
	PostingTypeExpense  = "expense"
	PostingTypeSalary   = "salary"
	PostingTypeTransfer = "transfer"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Posting is a single dated financial entry: a transaction or one leg of a
// transfer. Amount is always a non-negative magnitude; Direction carries the
// sign. A posting linked to a credit card (CreditCardID set) never moves an
// account balance directly; card spending reaches an account only through a
// bill-payment posting.
type Posting struct {
	PostingID    string    `firestore:"postingId" json:"postingId"`
	AccountID    string    `firestore:"accountId" json:"accountId,omitempty"`
	CreditCardID string    `firestore:"creditCardId" json:"creditCardId,omitempty"`
	TransferID   string    `firestore:"transferId" json:"transferId,omitempty"`
	Name         string    `firestore:"name" json:"name"`
	Type         string    `firestore:"type" json:"type"`
	Direction    string    `firestore:"direction" json:"direction"`
	Amount       float64   `firestore:"amount" json:"amount"`
	Date         time.Time `firestore:"date" json:"date"`
	Notes        string    `firestore:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}
