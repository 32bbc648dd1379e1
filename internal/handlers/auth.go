package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"spinrewards/internal/auth"
	"spinrewards/internal/directory"
	"spinrewards/internal/middleware"
	"spinrewards/internal/validator"
)

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Password     string `json:"password"`
	DeviceID     string `json:"device_id"`
	ReferralCode string `json:"referral_code"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateContact(req.Email, req.Mobile); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password != "" {
		if err := validator.ValidatePassword(req.Password); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	account, err := h.directory.Register(r.Context(), directory.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Password:     req.Password,
		DeviceID:     req.DeviceID,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		if errors.Is(err, directory.ErrDuplicateAccount) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, account.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	h.audit(r, account.ID, "register", "user", account.ID, map[string]string{
		"ip":         r.RemoteAddr,
		"user_agent": r.UserAgent(),
	})
	respondJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  accountView(account),
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	ByMobile   bool   `json:"by_mobile"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.directory.Login(r.Context(), req.Identifier, req.Password, req.ByMobile)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, directory.ErrAccountBlocked):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, account.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	h.audit(r, account.ID, "login", "user", account.ID, map[string]string{
		"ip":         r.RemoteAddr,
		"user_agent": r.UserAgent(),
	})
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  accountView(account),
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	account, err := h.directory.ByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	respondJSON(w, http.StatusOK, accountView(account))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.directory.Logout(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	h.audit(r, userID, "logout", "user", userID, nil)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
