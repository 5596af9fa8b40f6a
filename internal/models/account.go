package models

import (
	"time"
)

// Account is a user-owned money account. Balance is derived from the
// account's postings and is written only by the balance reconciler;
// it can always be rebuilt from scratch with a resync.
type Account struct {
	AccountID string    `firestore:"accountId" json:"accountId"`
	Name      string    `firestore:"name" json:"name"`
	Color     string    `firestore:"color" json:"color,omitempty"`
	Balance   float64   `firestore:"balance" json:"balance"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
