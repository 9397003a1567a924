package handler

import (
	"encoding/json"
	"net/http"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/service"
)

type checkoutRequest struct {
	UserID int                `json:"user_id" validate:"required"`
	Items  []service.LineItem `json:"items" validate:"required,min=1"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "user_id and items required"))
		return
	}

	total, err := h.checkout.Checkout(r.Context(), req.UserID, req.Items)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Order placed",
		"total":   total,
	})
}
