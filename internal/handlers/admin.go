package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"spinrewards/internal/auth"
	"spinrewards/internal/directory"
	"spinrewards/internal/ledger"
	"spinrewards/internal/middleware"
	"spinrewards/internal/models"
	"spinrewards/internal/websocket"
	"spinrewards/internal/withdraw"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load users")
		return
	}
	views := make([]map[string]any, 0, len(users))
	for _, account := range users {
		views = append(views, accountView(account))
	}
	respondJSON(w, http.StatusOK, views)
}

type setBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

func (h *Handler) AdminSetBlocked(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	var req setBlockedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account, err := h.directory.SetBlocked(r.Context(), targetID, req.Blocked)
	if err != nil {
		if errors.Is(err, directory.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update account")
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())
	h.audit(r, actorID, "set_blocked", "user", targetID, map[string]string{
		"blocked": strconv.FormatBool(req.Blocked),
	})
	respondJSON(w, http.StatusOK, accountView(account))
}

func (h *Handler) AdminListWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = withdraw.ListAll
	}
	requests, err := h.withdrawals.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load withdrawals")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) AdminSetWithdrawStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := models.WithdrawStatus(strings.ToUpper(req.Status))
	request, err := h.withdrawals.SetStatus(r.Context(), requestID, status)
	if err != nil {
		switch {
		case errors.Is(err, withdraw.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdraw.ErrRequestNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "unable to update request")
		}
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())
	h.audit(r, actorID, "set_withdraw_status", "withdrawal", requestID, map[string]string{
		"status": string(status),
	})
	respondJSON(w, http.StatusOK, request)
}

func (h *Handler) AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) AdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.settings.Set(r.Context(), settings); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save settings")
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())
	h.audit(r, actorID, "update_settings", "settings", "settings", nil)
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.Summarize(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) AdminListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = ledger.HistoryAll
	}
	history, err := h.ledger.History(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *Handler) AdminListAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := parseInt(query.Get("limit"), 50)
	page := parseInt(query.Get("page"), 1)
	offset := (page - 1) * limit
	entries, err := h.auditLog.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load audit log")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) WSCoins(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
