package dto

import "github.com/walletwise/backend/internal/models"

type CreateAccountRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=32"`
}

type UpdateAccountRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Color *string `json:"color" validate:"omitempty,max=32"`
}

// AccountPage is one page of a cursor-paginated account listing. An empty
// NextCursor means the listing is exhausted.
type AccountPage struct {
	Items      []*models.Account `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
