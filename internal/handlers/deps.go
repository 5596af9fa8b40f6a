package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/walletwise/backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client

	UserSvc        UserService
	AccountSvc     accountService
	BalanceSvc     balanceService
	TransactionSvc transactionService
	CreditCardSvc  creditCardService
}
