package handlers

import (
	"net/http"

	"spinrewards/internal/middleware"
)

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	history, err := h.ledger.History(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) ListThemes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Themes())
}
