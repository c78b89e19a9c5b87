package handlers

import (
	"net/http"

	"github.com/Hariksh/Expense-tracker/internal/middleware"
	"github.com/Hariksh/Expense-tracker/internal/service"
)

// AuthHandler handles registration, login, user listing and user stats.
type AuthHandler struct {
	auth  *service.AuthService
	stats *service.StatsService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, stats *service.StatsService) *AuthHandler {
	return &AuthHandler{auth: auth, stats: stats}
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if !decode(w, r, &payload) {
		return
	}

	session, err := h.auth.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !decode(w, r, &payload) {
		return
	}

	session, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ListUsers handles GET /api/auth/users.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Stats handles GET /api/auth/stats.
func (h *AuthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ComputeUserStats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
