package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/walletwise/backend/internal/handlers"
	"github.com/walletwise/backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	ush := handlers.NewUserHandlers(deps)
	ach := handlers.NewAccountHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	cch := handlers.NewCreditCardHandlers(deps)

	am := middleware.NewMiddleware(deps.Firebase)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/users", ush.UserRoutes())
		r.Mount("/accounts", ach.AccountRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/transfers", txh.TransferRoutes())
		r.Mount("/credit-cards", cch.CreditCardRoutes())
	})

	return r
}
