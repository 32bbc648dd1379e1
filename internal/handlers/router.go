package handlers

import (
	"net/http"

	"spinrewards/internal/config"
	"spinrewards/internal/db"
	"spinrewards/internal/middleware"
	"spinrewards/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg         config.Config
	txRunner    db.TxRunner
	directory   Directory
	ledger      Ledger
	withdrawals Withdrawals
	rewards     Rewards
	settings    SettingsRegistry
	stats       Stats
	auditLog    AuditStore
	hub         *websocket.Hub
}

func New(cfg config.Config, txRunner db.TxRunner, directory Directory, ledger Ledger, withdrawals Withdrawals, rewards Rewards, settings SettingsRegistry, stats Stats, auditLog AuditStore, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:         cfg,
		txRunner:    txRunner,
		directory:   directory,
		ledger:      ledger,
		withdrawals: withdrawals,
		rewards:     rewards,
		settings:    settings,
		stats:       stats,
		auditLog:    auditLog,
		hub:         hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Post("/logout", h.Logout)
	})
	router.Route("/rewards", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Post("/spin", h.Spin)
		r.Post("/ads/watch", h.WatchAd)
		r.Post("/daily", h.ClaimDaily)
	})
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/transactions", h.ListTransactions)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/withdrawals", h.RequestWithdrawal)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/withdrawals", h.ListWithdrawals)
	router.Get("/settings", h.GetSettings)
	router.Get("/themes", h.ListThemes)
	router.Get("/ws/coins", h.WSCoins)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireAdmin(h.directory))
		r.Get("/users", h.AdminListUsers)
		r.Post("/users/{id}/block", h.AdminSetBlocked)
		r.Get("/withdrawals", h.AdminListWithdrawals)
		r.Post("/withdrawals/{id}/status", h.AdminSetWithdrawStatus)
		r.Get("/settings", h.AdminGetSettings)
		r.Put("/settings", h.AdminUpdateSettings)
		r.Get("/stats", h.AdminStats)
		r.Get("/transactions", h.AdminListTransactions)
		r.Get("/audit", h.AdminListAudit)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
