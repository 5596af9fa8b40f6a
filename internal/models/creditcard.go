package models

import (
	"time"
)

type CreditCard struct {
	CardID     string    `firestore:"cardId" json:"cardId"`
	Name       string    `firestore:"name" json:"name"`
	Limit      float64   `firestore:"limit" json:"limit,omitempty"`
	ClosingDay int       `firestore:"closingDay" json:"closingDay,omitempty"`
	DueDay     int       `firestore:"dueDay" json:"dueDay,omitempty"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}
