package handler

import (
	"encoding/json"
	"net/http"

	"contacts_api/internal/api/middleware"
	"contacts_api/internal/app/service"
	"contacts_api/internal/common"
	"contacts_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	contactService *service.ContactService
	responder      *common.Responder
}

func NewContactHandler(contactService *service.ContactService, responder *common.Responder) *ContactHandler {
	return &ContactHandler{contactService: contactService, responder: responder}
}

func (h *ContactHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Use(authenticate)
	r.Get("/all", h.list)
	r.Get("/get/{id}", h.get)
	r.Post("/add", h.add)
	r.Put("/update/{id}", h.update)
	r.Delete("/delete/{id}", h.delete)
}

type contactListResponse struct {
	Message  string          `json:"message"`
	Contacts []model.Contact `json:"contacts"`
}

type contactResponse struct {
	Message string         `json:"message"`
	Contact *model.Contact `json:"contact"`
}

type contactCreatedResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}

	contacts, err := h.contactService.List(r.Context(), user)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contactListResponse{Message: "All contacts", Contacts: contacts})
}

func (h *ContactHandler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}

	contact, err := h.contactService.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contactResponse{Message: "get-contact", Contact: contact})
}

func (h *ContactHandler) add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}

	var req service.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Error(w, common.WrapError(http.StatusBadRequest, "Invalid request payload", err))
		return
	}

	contact, err := h.contactService.Create(r.Context(), user, req)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contactCreatedResponse{
		Message: "add-contact",
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
	})
}

func (h *ContactHandler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}

	var req service.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.Error(w, common.WrapError(http.StatusBadRequest, "Invalid request payload", err))
		return
	}

	contact, err := h.contactService.Update(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contactResponse{Message: "update-contact", Contact: contact})
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.responder.Error(w, common.Unauthorized("Missing user context"))
		return
	}

	contact, err := h.contactService.Delete(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contactResponse{Message: "delete-contact", Contact: contact})
}
