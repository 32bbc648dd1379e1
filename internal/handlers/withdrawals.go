package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"spinrewards/internal/middleware"
	"spinrewards/internal/models"
	"spinrewards/internal/withdraw"
)

type withdrawRequestPayload struct {
	Method         string `json:"method"`
	Amount         int64  `json:"amount"`
	AccountDetails string `json:"account_details"`
}

func (h *Handler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req withdrawRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !models.IsWithdrawMethod(req.Method) {
		respondError(w, http.StatusBadRequest, "invalid withdraw method")
		return
	}
	if req.Amount <= 0 || req.AccountDetails == "" {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.directory.ByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	request, err := h.withdrawals.Request(r.Context(), userID, account.Name, req.Method, req.Amount, req.AccountDetails)
	if err != nil {
		switch {
		case errors.Is(err, withdraw.ErrWithdrawalsDisabled):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, withdraw.ErrBelowMinimum):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdraw.ErrInsufficientBalance):
			respondError(w, http.StatusPaymentRequired, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "withdrawal request failed")
		}
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	requests, err := h.withdrawals.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load withdrawals")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
