package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"spinrewards/internal/models"
	"spinrewards/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// accountView strips the password hash before an account leaves the API.
func accountView(a models.Account) map[string]any {
	return map[string]any{
		"id":              a.ID,
		"name":            a.Name,
		"email":           a.Email,
		"mobile":          a.Mobile,
		"role":            a.Role,
		"coins":           a.Coins,
		"spins":           a.Spins,
		"totalSpins":      a.TotalSpins,
		"totalAdsWatched": a.TotalAdsWatched,
		"deviceId":        a.DeviceID,
		"signupDate":      a.SignupDate,
		"lastLogin":       a.LastLogin,
		"isBlocked":       a.IsBlocked,
		"referralCode":    a.ReferralCode,
		"lastDailyBonus":  a.LastDailyBonus,
	}
}

func (h *Handler) audit(r *http.Request, actorID, action, entityType, entityID string, data map[string]string) {
	payload, _ := json.Marshal(data)
	_ = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.auditLog.Append(r.Context(), tx, store.AuditEntry{
			ID:         uuid.NewString(),
			ActorID:    actorID,
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			Data:       string(payload),
			Date:       time.Now().UTC(),
		})
	})
}
