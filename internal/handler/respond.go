package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"alfaraz/spareparts/internal/apperr"

	"go.uber.org/zap"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

// respondError turns any error into the {"error": ...} body the clients
// expect. Typed errors carry their own status; everything else is a 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	h.respondJSON(w, status, map[string]string{"error": err.Error()})
}

// respondLoginError is respondError with NotFound downgraded to 400, matching
// the reference login flows.
func (h *Handler) respondLoginError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind == apperr.NotFound {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": e.Error()})
		return
	}
	h.respondError(w, err)
}
