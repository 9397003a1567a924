package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"alfaraz/spareparts/internal/apperr"

	"github.com/go-chi/chi/v5"
)

// Price and quantity are deliberately untyped: the admin frontend posts them
// as numbers or numeric strings and the catalog service coerces both.
type partRequest struct {
	Name     string `json:"name"`
	Price    any    `json:"price"`
	Quantity any    `json:"quantity"`
}

func (h *Handler) ListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.catalog.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, parts)
}

func (h *Handler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	id, err := h.catalog.Create(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Part added",
		"partId":  id,
	})
}

func (h *Handler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "invalid part id"))
		return
	}

	var req partRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}

	if err := h.catalog.Update(r.Context(), id, req.Name, req.Price, req.Quantity); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Part updated"})
}

func (h *Handler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "invalid part id"))
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Part deleted"})
}
