// Package handlers implements the JSON HTTP handlers over the engine
// services. Handlers only decode, delegate and encode: every invariant
// lives in the service and ledger packages.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string   `json:"error"`
	Delta *float64 `json:"delta,omitempty"`
}

// writeError translates engine error kinds into status codes. This mapping
// is the only place transport concerns meet the error taxonomy.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}

	var unbalanced *apperr.UnbalancedError
	if errors.As(err, &unbalanced) {
		body.Delta = &unbalanced.Delta
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	}
	writeJSON(w, status, body)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
