package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Hariksh/Expense-tracker/internal/middleware"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/service"
)

// GroupHandler handles HTTP requests for groups and group members.
type GroupHandler struct {
	service *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(service *service.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type createGroupPayload struct {
	Name    string                `json:"name"`
	Members []service.MemberEntry `json:"members"`
}

type addMembersPayload struct {
	Members []service.MemberEntry `json:"members"`
}

type groupDetail struct {
	*models.Group
	Expenses []*models.Expense `json:"expenses"`
}

// List handles GET /api/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createGroupPayload
	if !decode(w, r, &payload) {
		return
	}

	group, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), payload.Name, payload.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// Get handles GET /api/groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, expenses, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupDetail{Group: group, Expenses: expenses})
}

// ListMembers handles GET /api/groups/{id}/members.
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.Members(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// AddMembers handles POST /api/groups/{id}/members.
func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	var payload addMembersPayload
	if !decode(w, r, &payload) {
		return
	}

	groupID := chi.URLParam(r, "id")
	members, err := h.service.AddMembers(r.Context(), middleware.GetUserID(r.Context()), groupID, payload.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groupId": groupID, "members": members})
}

// Delete handles DELETE /api/groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
