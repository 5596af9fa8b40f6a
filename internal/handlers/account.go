package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/walletwise/backend/internal/dto"
	"github.com/walletwise/backend/internal/middleware"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/response"
)

type accountService interface {
	CreateAccount(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error)
	GetAccount(ctx context.Context, uid, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, uid string) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, uid, accountID string, req dto.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, uid, accountID string) error
}

type balanceService interface {
	SyncAccountBalance(ctx context.Context, uid, accountID string) (float64, error)
	RecalculateAllBalances(ctx context.Context, uid string) (dto.RecalculateResult, error)
}

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      accountService
	BalanceSvc      balanceService
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
		BalanceSvc:      deps.BalanceSvc,
	}
}

func (h *accountHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAccounts)
	r.Post("/", h.CreateAccount)
	r.Post("/recalculate", h.RecalculateAllBalances) // must be before /{accountId}
	r.Get("/{accountId}", h.GetAccount)
	r.Put("/{accountId}", h.UpdateAccount)
	r.Delete("/{accountId}", h.DeleteAccount)
	r.Post("/{accountId}/sync", h.SyncAccountBalance)
	return r
}

func (h *accountHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.AccountSvc.ListAccounts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *accountHandlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.AccountSvc.CreateAccount(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, account)
}

func (h *accountHandlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	uid := middleware.UID(r.Context())
	account, err := h.AccountSvc.GetAccount(r.Context(), uid, accountID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, account)
}

func (h *accountHandlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.AccountSvc.UpdateAccount(r.Context(), uid, accountID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, account)
}

func (h *accountHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	uid := middleware.UID(r.Context())
	if err := h.AccountSvc.DeleteAccount(r.Context(), uid, accountID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// SyncAccountBalance recomputes one account's balance from its postings and
// returns the stored result.
func (h *accountHandlers) SyncAccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	uid := middleware.UID(r.Context())
	balance, err := h.BalanceSvc.SyncAccountBalance(r.Context(), uid, accountID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.SyncBalanceResponse{Balance: balance})
}

// RecalculateAllBalances resyncs every account the caller owns. Per-account
// failures come back in the payload, not as an HTTP error.
func (h *accountHandlers) RecalculateAllBalances(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.BalanceSvc.RecalculateAllBalances(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
