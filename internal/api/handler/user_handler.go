package handler

import (
	"encoding/json"
	"net/http"

	"contacts_api/internal/api/middleware"
	"contacts_api/internal/app/service"
	"contacts_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	authService *service.AuthService
	responder   *common.Responder
}

func NewUserHandler(authService *service.AuthService, responder *common.Responder) *UserHandler {
	return &UserHandler{authService: authService, responder: responder}
}

func (h *UserHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Get("/current", h.current)
	})
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Error(w, common.WrapError(http.StatusBadRequest, "Invalid request payload", err))
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Error(w, common.WrapError(http.StatusBadRequest, "Invalid request payload", err))
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// current echoes the identity decoded from the bearer token. No lookup: the
// token is self-contained.
func (h *UserHandler) current(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, service.CurrentUserResponse{User: user})
}
