package handlers

import (
	"context"

	"spinrewards/internal/directory"
	"spinrewards/internal/models"
	"spinrewards/internal/rewards"
	"spinrewards/internal/stats"
	"spinrewards/internal/store"
)

type Directory interface {
	Register(ctx context.Context, in directory.RegisterInput) (models.Account, error)
	Login(ctx context.Context, identifier, secret string, byMobile bool) (models.Account, error)
	Logout(ctx context.Context) error
	ByID(ctx context.Context, userID string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	SetBlocked(ctx context.Context, userID string, blocked bool) (models.Account, error)
}

type Ledger interface {
	History(ctx context.Context, userID string) ([]models.Transaction, error)
}

type Withdrawals interface {
	Request(ctx context.Context, userID, userName, method string, amount int64, accountDetails string) (models.WithdrawRequest, error)
	SetStatus(ctx context.Context, requestID string, status models.WithdrawStatus) (models.WithdrawRequest, error)
	List(ctx context.Context, userID string) ([]models.WithdrawRequest, error)
}

type Rewards interface {
	Spin(ctx context.Context, userID string) (rewards.SpinResult, error)
	WatchAd(ctx context.Context, userID string, kind rewards.AdKind) (rewards.AdResult, error)
	ClaimDaily(ctx context.Context, userID string) (rewards.DailyResult, error)
}

type SettingsRegistry interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Set(ctx context.Context, settings models.AppSettings) error
	Themes() []models.Theme
}

type Stats interface {
	Summarize(ctx context.Context) (stats.Summary, error)
}

type AuditStore interface {
	Append(ctx context.Context, tx store.Tx, entry store.AuditEntry) error
	List(ctx context.Context, limit, offset int) ([]store.AuditEntry, error)
}
