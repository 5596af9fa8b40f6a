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

type creditCardService interface {
	CreateCard(ctx context.Context, uid string, req dto.CreateCreditCardRequest) (*models.CreditCard, error)
	ListCards(ctx context.Context, uid string) ([]*models.CreditCard, error)
	DeleteCard(ctx context.Context, uid, cardID string) error
	PayBill(ctx context.Context, uid, cardID string, req dto.PayBillRequest) (*models.Posting, error)
}

type creditCardHandlers struct {
	ResponseHandler response.ResponseHandler
	CreditCardSvc   creditCardService
}

func NewCreditCardHandlers(deps *Deps) *creditCardHandlers {
	return &creditCardHandlers{
		ResponseHandler: deps.ResponseHandler,
		CreditCardSvc:   deps.CreditCardSvc,
	}
}

func (h *creditCardHandlers) CreditCardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCards)
	r.Post("/", h.CreateCard)
	r.Delete("/{cardId}", h.DeleteCard)
	r.Post("/{cardId}/pay", h.PayBill)
	return r
}

func (h *creditCardHandlers) ListCards(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	cards, err := h.CreditCardSvc.ListCards(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cards)
}

func (h *creditCardHandlers) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCreditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	card, err := h.CreditCardSvc.CreateCard(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, card)
}

func (h *creditCardHandlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardId")
	uid := middleware.UID(r.Context())
	if err := h.CreditCardSvc.DeleteCard(r.Context(), uid, cardID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *creditCardHandlers) PayBill(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardId")
	var req dto.PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	payment, err := h.CreditCardSvc.PayBill(r.Context(), uid, cardID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, payment)
}
