package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"spinrewards/internal/middleware"
	"spinrewards/internal/rewards"
)

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	result, err := h.rewards.Spin(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrNoSpinsLeft):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, rewards.ErrUnknownAccount):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "spin failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type watchAdRequest struct {
	Kind string `json:"kind"`
}

func (h *Handler) WatchAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req watchAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Kind == "" {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	result, err := h.rewards.WatchAd(r.Context(), userID, rewards.AdKind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrInvalidAdKind):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, rewards.ErrAdsDisabled):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, rewards.ErrUnknownAccount):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "ad reward failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	result, err := h.rewards.ClaimDaily(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, rewards.ErrDailyBonusClaimed):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, rewards.ErrUnknownAccount):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "daily bonus failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, result)
}
