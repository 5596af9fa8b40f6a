package dto

type CreateCreditCardRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Limit      float64 `json:"limit" validate:"omitempty,gte=0"`
	ClosingDay int     `json:"closingDay" validate:"omitempty,min=1,max=31"`
	DueDay     int     `json:"dueDay" validate:"omitempty,min=1,max=31"`
}

type PayBillRequest struct {
	AccountID string  `json:"accountId" validate:"required,max=64"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required"`
}
