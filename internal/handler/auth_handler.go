package handler

import (
	"encoding/json"
	"net/http"

	"alfaraz/spareparts/internal/apperr"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "All fields required"))
		return
	}

	id, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully",
		"userId":  id,
	})
}

func (h *Handler) UserLogin(w http.ResponseWriter, r *http.Request) {
	var req userLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "Email and password required"))
		return
	}

	id, err := h.auth.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondLoginError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"userId":  id,
	})
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.Wrap(apperr.Validation, "invalid request body", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, apperr.New(apperr.Validation, "Username and password required"))
		return
	}

	if err := h.auth.LoginAdmin(r.Context(), req.Username, req.Password); err != nil {
		h.respondLoginError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Admin login successful"})
}
