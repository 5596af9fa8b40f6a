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

type transactionService interface {
	CreatePosting(ctx context.Context, uid string, req dto.CreatePostingRequest) (*models.Posting, error)
	UpdatePosting(ctx context.Context, uid, postingID string, req dto.UpdatePostingRequest) (*models.Posting, error)
	DeletePosting(ctx context.Context, uid, postingID string) error
	ListPostings(ctx context.Context, uid, accountID, cursor string) (*dto.PostingPage, error)
	CreateTransfer(ctx context.Context, uid string, req dto.CreateTransferRequest) ([]*models.Posting, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPostings)
	r.Post("/", h.CreatePosting)
	r.Put("/{postingId}", h.UpdatePosting)
	r.Delete("/{postingId}", h.DeletePosting)
	return r
}

func (h *transactionHandlers) TransferRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTransfer)
	return r
}

// ListPostings returns one page. ?accountId narrows to a single account and
// ?cursor resumes a previous page.
func (h *transactionHandlers) ListPostings(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accountID := r.URL.Query().Get("accountId")
	cursor := r.URL.Query().Get("cursor")

	page, err := h.TransactionSvc.ListPostings(r.Context(), uid, accountID, cursor)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *transactionHandlers) CreatePosting(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	posting, err := h.TransactionSvc.CreatePosting(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, posting)
}

func (h *transactionHandlers) UpdatePosting(w http.ResponseWriter, r *http.Request) {
	postingID := chi.URLParam(r, "postingId")
	var req dto.UpdatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	posting, err := h.TransactionSvc.UpdatePosting(r.Context(), uid, postingID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, posting)
}

func (h *transactionHandlers) DeletePosting(w http.ResponseWriter, r *http.Request) {
	postingID := chi.URLParam(r, "postingId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.DeletePosting(r.Context(), uid, postingID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	legs, err := h.TransactionSvc.CreateTransfer(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, legs)
}
