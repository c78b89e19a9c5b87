package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hariksh/Expense-tracker/internal/middleware"
	"github.com/Hariksh/Expense-tracker/internal/service"
)

// ContactHandler handles HTTP requests for the contact list.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type addContactPayload struct {
	Email string `json:"email"`
}

// List handles GET /api/contacts?search=&page=&limit=.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	contacts, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), q.Get("search"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// Add handles POST /api/contacts.
func (h *ContactHandler) Add(w http.ResponseWriter, r *http.Request) {
	var payload addContactPayload
	if !decode(w, r, &payload) {
		return
	}

	user, err := h.service.Add(r.Context(), middleware.GetUserID(r.Context()), payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "contact added", "user": user})
}
