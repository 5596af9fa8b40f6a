package dto

import "github.com/walletwise/backend/internal/models"

type CreatePostingRequest struct {
	AccountID    string  `json:"accountId" validate:"required_without=CreditCardID,omitempty,max=64"`
	CreditCardID string  `json:"creditCardId" validate:"omitempty,max=64"`
	Name         string  `json:"name" validate:"required,max=200"`
	Type         string  `json:"type" validate:"required,oneof=income expense salary"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Date         string  `json:"date" validate:"required"`
	Notes        string  `json:"notes" validate:"omitempty,max=1000"`
}

type UpdatePostingRequest struct {
	AccountID *string  `json:"accountId" validate:"omitempty,max=64"`
	Name      *string  `json:"name" validate:"omitempty,max=200"`
	Type      *string  `json:"type" validate:"omitempty,oneof=income expense salary"`
	Amount    *float64 `json:"amount" validate:"omitempty,gt=0"`
	Date      *string  `json:"date"`
	Notes     *string  `json:"notes" validate:"omitempty,max=1000"`
}

type CreateTransferRequest struct {
	FromAccountID string  `json:"fromAccountId" validate:"required,max=64"`
	ToAccountID   string  `json:"toAccountId" validate:"required,max=64,nefield=FromAccountID"`
	Name          string  `json:"name" validate:"omitempty,max=200"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Date          string  `json:"date" validate:"required"`
}

// PostingPage is one page of a cursor-paginated posting listing. An empty
// NextCursor means the listing is exhausted.
type PostingPage struct {
	Items      []*models.Posting `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
