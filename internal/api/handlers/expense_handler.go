package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Hariksh/Expense-tracker/internal/middleware"
	"github.com/Hariksh/Expense-tracker/internal/service"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	service *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(service *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateExpenseInput
	if !decode(w, r, &input) {
		return
	}

	expense, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.ExpensePatch
	if !decode(w, r, &patch) {
		return
	}

	expense, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
