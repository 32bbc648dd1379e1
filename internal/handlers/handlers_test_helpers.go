package handlers

import (
	"context"
	"time"

	"spinrewards/internal/config"
	"spinrewards/internal/directory"
	"spinrewards/internal/models"
	"spinrewards/internal/rewards"
	"spinrewards/internal/stats"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubDirectory struct {
	registerFn   func(ctx context.Context, in directory.RegisterInput) (models.Account, error)
	loginFn      func(ctx context.Context, identifier, secret string, byMobile bool) (models.Account, error)
	logoutFn     func(ctx context.Context) error
	byIDFn       func(ctx context.Context, userID string) (models.Account, error)
	listFn       func(ctx context.Context) ([]models.Account, error)
	setBlockedFn func(ctx context.Context, userID string, blocked bool) (models.Account, error)
}

func (s stubDirectory) Register(ctx context.Context, in directory.RegisterInput) (models.Account, error) {
	if s.registerFn == nil {
		return models.Account{}, nil
	}
	return s.registerFn(ctx, in)
}

func (s stubDirectory) Login(ctx context.Context, identifier, secret string, byMobile bool) (models.Account, error) {
	if s.loginFn == nil {
		return models.Account{}, nil
	}
	return s.loginFn(ctx, identifier, secret, byMobile)
}

func (s stubDirectory) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s stubDirectory) ByID(ctx context.Context, userID string) (models.Account, error) {
	if s.byIDFn == nil {
		return models.Account{ID: userID}, nil
	}
	return s.byIDFn(ctx, userID)
}

func (s stubDirectory) List(ctx context.Context) ([]models.Account, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubDirectory) SetBlocked(ctx context.Context, userID string, blocked bool) (models.Account, error) {
	if s.setBlockedFn == nil {
		return models.Account{ID: userID, IsBlocked: blocked}, nil
	}
	return s.setBlockedFn(ctx, userID, blocked)
}

type stubLedger struct {
	historyFn func(ctx context.Context, userID string) ([]models.Transaction, error)
}

func (s stubLedger) History(ctx context.Context, userID string) ([]models.Transaction, error) {
	if s.historyFn == nil {
		return nil, nil
	}
	return s.historyFn(ctx, userID)
}

type stubWithdrawals struct {
	requestFn   func(ctx context.Context, userID, userName, method string, amount int64, accountDetails string) (models.WithdrawRequest, error)
	setStatusFn func(ctx context.Context, requestID string, status models.WithdrawStatus) (models.WithdrawRequest, error)
	listFn      func(ctx context.Context, userID string) ([]models.WithdrawRequest, error)
}

func (s stubWithdrawals) Request(ctx context.Context, userID, userName, method string, amount int64, accountDetails string) (models.WithdrawRequest, error) {
	if s.requestFn == nil {
		return models.WithdrawRequest{}, nil
	}
	return s.requestFn(ctx, userID, userName, method, amount, accountDetails)
}

func (s stubWithdrawals) SetStatus(ctx context.Context, requestID string, status models.WithdrawStatus) (models.WithdrawRequest, error) {
	if s.setStatusFn == nil {
		return models.WithdrawRequest{}, nil
	}
	return s.setStatusFn(ctx, requestID, status)
}

func (s stubWithdrawals) List(ctx context.Context, userID string) ([]models.WithdrawRequest, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, userID)
}

type stubRewards struct {
	spinFn       func(ctx context.Context, userID string) (rewards.SpinResult, error)
	watchAdFn    func(ctx context.Context, userID string, kind rewards.AdKind) (rewards.AdResult, error)
	claimDailyFn func(ctx context.Context, userID string) (rewards.DailyResult, error)
}

func (s stubRewards) Spin(ctx context.Context, userID string) (rewards.SpinResult, error) {
	if s.spinFn == nil {
		return rewards.SpinResult{}, nil
	}
	return s.spinFn(ctx, userID)
}

func (s stubRewards) WatchAd(ctx context.Context, userID string, kind rewards.AdKind) (rewards.AdResult, error) {
	if s.watchAdFn == nil {
		return rewards.AdResult{}, nil
	}
	return s.watchAdFn(ctx, userID, kind)
}

func (s stubRewards) ClaimDaily(ctx context.Context, userID string) (rewards.DailyResult, error) {
	if s.claimDailyFn == nil {
		return rewards.DailyResult{}, nil
	}
	return s.claimDailyFn(ctx, userID)
}

type stubSettingsRegistry struct {
	getFn func(ctx context.Context) (models.AppSettings, error)
	setFn func(ctx context.Context, settings models.AppSettings) error
}

func (s stubSettingsRegistry) Get(ctx context.Context) (models.AppSettings, error) {
	if s.getFn == nil {
		return models.DefaultSettings(), nil
	}
	return s.getFn(ctx)
}

func (s stubSettingsRegistry) Set(ctx context.Context, settings models.AppSettings) error {
	if s.setFn == nil {
		return nil
	}
	return s.setFn(ctx, settings)
}

func (s stubSettingsRegistry) Themes() []models.Theme {
	return models.AvailableThemes()
}

type stubStats struct {
	summary stats.Summary
}

func (s stubStats) Summarize(context.Context) (stats.Summary, error) {
	return s.summary, nil
}

type stubAuditStore struct {
	entries *[]store.AuditEntry
}

func (s stubAuditStore) Append(_ context.Context, _ store.Tx, entry store.AuditEntry) error {
	if s.entries != nil {
		*s.entries = append(*s.entries, entry)
	}
	return nil
}

func (s stubAuditStore) List(context.Context, int, int) ([]store.AuditEntry, error) {
	if s.entries == nil {
		return nil, nil
	}
	return *s.entries, nil
}

func testConfig() config.Config {
	return config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
}

func newTestHandler(d Directory, l Ledger, w Withdrawals, r Rewards, s SettingsRegistry, st Stats, a AuditStore) *Handler {
	return New(testConfig(), fakeTxRunner{}, d, l, w, r, s, st, a, websocket.NewHub())
}
