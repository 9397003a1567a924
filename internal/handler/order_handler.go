package handler

import (
	"net/http"
	"strconv"

	"alfaraz/spareparts/internal/apperr"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "invalid user id"))
		return
	}

	orders, err := h.orders.ForUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.All(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}
