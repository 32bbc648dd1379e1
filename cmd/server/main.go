package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spinrewards/internal/config"
	"spinrewards/internal/db"
	"spinrewards/internal/directory"
	"spinrewards/internal/handlers"
	"spinrewards/internal/ledger"
	"spinrewards/internal/rewards"
	"spinrewards/internal/settings"
	"spinrewards/internal/stats"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"
	"spinrewards/internal/withdraw"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	sessions := store.NewSessionStore(database)
	settingsStore := store.NewSettingsStore(database)
	withdrawals := store.NewWithdrawStore(database)
	transactions := store.NewTransactionStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	coinLedger := ledger.New(txRunner, users, transactions, hub)
	accounts := directory.New(txRunner, users, sessions, settingsStore, coinLedger, hub)
	withdrawFlow := withdraw.New(txRunner, withdrawals, users, settingsStore, coinLedger, hub)
	rewardSvc := rewards.New(txRunner, users, settingsStore, coinLedger, hub)
	settingsRegistry := settings.New(txRunner, settingsStore)
	statsAgg := stats.New(users, withdrawals)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accounts.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatalf("failed to seed admin account: %v", err)
	}
	cancel()

	handler := handlers.New(cfg, txRunner, accounts, coinLedger, withdrawFlow, rewardSvc, settingsRegistry, statsAgg, audit, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("spinrewards API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
