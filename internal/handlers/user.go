package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/walletwise/backend/internal/middleware"
	"github.com/walletwise/backend/internal/response"
)

type UserService interface {
	CreateUser(ctx context.Context, uid, email, first, last string) error
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	return r
}

// CreateUser provisions the profile document for a freshly signed-up user.
// Identity comes from the verified token, never from the body.
func (h *userHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	email := middleware.Email(r.Context())

	if err := h.UserSvc.CreateUser(r.Context(), uid, email, req.FirstName, req.LastName); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
