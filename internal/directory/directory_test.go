package directory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spinrewards/internal/auth"
	"spinrewards/internal/models"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

type stubUserStore struct {
	users []models.Account
	saved *[]models.Account
}

func (s stubUserStore) All(context.Context) ([]models.Account, error) {
	return s.users, nil
}

func (s stubUserStore) AllForUpdate(context.Context, store.Getter) ([]models.Account, error) {
	return s.users, nil
}

func (s stubUserStore) Save(_ context.Context, _ store.Execer, users []models.Account) error {
	if s.saved != nil {
		*s.saved = users
	}
	return nil
}

type stubSessionStore struct {
	session store.Session
	has     bool
	saved   *[]store.Session
	cleared *int
}

func (s stubSessionStore) Get(context.Context) (store.Session, bool, error) {
	return s.session, s.has, nil
}

func (s stubSessionStore) Save(_ context.Context, _ store.Execer, session store.Session) error {
	if s.saved != nil {
		*s.saved = append(*s.saved, session)
	}
	return nil
}

func (s stubSessionStore) Clear(context.Context, store.Execer) error {
	if s.cleared != nil {
		*s.cleared++
	}
	return nil
}

type stubSettingsStore struct {
	settings models.AppSettings
}

func (s stubSettingsStore) GetTx(context.Context, store.Getter) (models.AppSettings, error) {
	return s.settings, nil
}

type ledgerCall struct {
	userID      string
	txType      models.TransactionType
	amount      int64
	description string
}

type stubLedger struct {
	calls *[]ledgerCall
	coins int64
}

func (s stubLedger) RecordTx(_ context.Context, _ store.Tx, userID string, txType models.TransactionType, amount int64, description string) (models.Transaction, int64, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, ledgerCall{userID: userID, txType: txType, amount: amount, description: description})
	}
	return models.Transaction{ID: "tx-1", UserID: userID}, s.coins, nil
}

type stubHub struct {
	calls []websocket.CoinUpdate
}

func (s *stubHub) BroadcastCoins(_ string, update websocket.CoinUpdate) {
	s.calls = append(s.calls, update)
}

func TestRegisterCreatesAccount(t *testing.T) {
	var savedUsers []models.Account
	var savedSessions []store.Session
	directory := New(fakeTxRunner{}, stubUserStore{saved: &savedUsers}, stubSessionStore{saved: &savedSessions},
		stubSettingsStore{settings: models.DefaultSettings()}, stubLedger{}, &stubHub{})

	account, err := directory.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pass1234",
		DeviceID: "device-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID == "" || account.Role != models.RoleUser {
		t.Fatalf("unexpected account: %#v", account)
	}
	if account.Spins != 5 || account.Coins != 0 {
		t.Fatalf("expected default spins and zero coins, got %#v", account)
	}
	if account.PasswordHash == "" || account.PasswordHash == "pass1234" {
		t.Fatalf("expected hashed password, got %q", account.PasswordHash)
	}
	if !auth.CheckPassword(account.PasswordHash, "pass1234") {
		t.Fatalf("stored hash does not verify")
	}
	if !strings.HasPrefix(account.ReferralCode, "REF") {
		t.Fatalf("unexpected referral code: %q", account.ReferralCode)
	}
	if len(savedUsers) != 1 {
		t.Fatalf("expected one saved user, got %d", len(savedUsers))
	}
	if len(savedSessions) != 1 || savedSessions[0].UserID != account.ID {
		t.Fatalf("expected session pointing at new account, got %#v", savedSessions)
	}
}

func TestRegisterDuplicateLeavesDirectoryUnchanged(t *testing.T) {
	var savedUsers []models.Account
	existing := []models.Account{{ID: "user-1", Email: "alice@example.com"}}
	directory := New(fakeTxRunner{}, stubUserStore{users: existing, saved: &savedUsers}, stubSessionStore{},
		stubSettingsStore{settings: models.DefaultSettings()}, stubLedger{}, &stubHub{})

	_, err := directory.Register(context.Background(), RegisterInput{Name: "Alice", Email: "alice@example.com"})
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if len(savedUsers) != 0 {
		t.Fatalf("expected no save on duplicate, got %#v", savedUsers)
	}

	_, err = directory.Register(context.Background(), RegisterInput{Name: "Bob", Mobile: "0300-1111111", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("unexpected error for distinct contact: %v", err)
	}
}

func TestRegisterGeneratesDeviceID(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{}, stubSessionStore{},
		stubSettingsStore{settings: models.DefaultSettings()}, stubLedger{}, &stubHub{})

	account, err := directory.Register(context.Background(), RegisterInput{Name: "Alice", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.DeviceID == "" {
		t.Fatalf("expected generated device id")
	}
}

func TestRegisterCreditsReferrer(t *testing.T) {
	var calls []ledgerCall
	hub := &stubHub{}
	directory := New(fakeTxRunner{}, stubUserStore{
		users: []models.Account{{ID: "user-1", Name: "Referrer", ReferralCode: "REF0001"}},
	}, stubSessionStore{}, stubSettingsStore{settings: models.DefaultSettings()}, stubLedger{calls: &calls, coins: 200}, hub)

	_, err := directory.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "a@b.com", ReferralCode: "REF0001",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 || calls[0].userID != "user-1" || calls[0].txType != models.TxReferralBonus || calls[0].amount != 200 {
		t.Fatalf("unexpected ledger calls: %#v", calls)
	}
	if calls[0].description != "Referral Bonus: Alice joined" {
		t.Fatalf("unexpected description: %s", calls[0].description)
	}
	if len(hub.calls) != 1 || hub.calls[0].Coins != 200 {
		t.Fatalf("unexpected broadcasts: %#v", hub.calls)
	}
}

func TestRegisterUnknownReferralCodeIgnored(t *testing.T) {
	var calls []ledgerCall
	directory := New(fakeTxRunner{}, stubUserStore{}, stubSessionStore{},
		stubSettingsStore{settings: models.DefaultSettings()}, stubLedger{calls: &calls}, &stubHub{})

	_, err := directory.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "a@b.com", ReferralCode: "REF9999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no referral credit, got %#v", calls)
	}
}

func loginFixture(t *testing.T, password string) []models.Account {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
	}
	return []models.Account{{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		Mobile:       "0300-1234567",
		PasswordHash: hash,
	}}
}

func TestLoginByEmail(t *testing.T) {
	var savedSessions []store.Session
	directory := New(fakeTxRunner{}, stubUserStore{users: loginFixture(t, "pass1234")},
		stubSessionStore{saved: &savedSessions}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	account, err := directory.Login(context.Background(), "ALICE@example.com", "pass1234", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "user-1" || account.LastLogin.IsZero() {
		t.Fatalf("unexpected account: %#v", account)
	}
	if len(savedSessions) != 1 || savedSessions[0].UserID != "user-1" {
		t.Fatalf("expected session saved, got %#v", savedSessions)
	}
}

func TestLoginByMobile(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{users: loginFixture(t, "pass1234")},
		stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	account, err := directory.Login(context.Background(), "0300-1234567", "pass1234", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "user-1" {
		t.Fatalf("unexpected account: %#v", account)
	}
}

func TestLoginWrongPasswordOnAnyChannel(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{users: loginFixture(t, "pass1234")},
		stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	if _, err := directory.Login(context.Background(), "alice@example.com", "wrong", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials by email, got %v", err)
	}
	// password set on the account gates the mobile channel too
	if _, err := directory.Login(context.Background(), "0300-1234567", "wrong", true); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials by mobile, got %v", err)
	}
}

func TestLoginPasswordlessAccount(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{users: loginFixture(t, "")},
		stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	if _, err := directory.Login(context.Background(), "0300-1234567", "", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{}, stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})
	if _, err := directory.Login(context.Background(), "nobody@example.com", "x", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	users := loginFixture(t, "pass1234")
	users[0].IsBlocked = true
	directory := New(fakeTxRunner{}, stubUserStore{users: users}, stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	if _, err := directory.Login(context.Background(), "alice@example.com", "pass1234", false); !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	cleared := 0
	directory := New(fakeTxRunner{}, stubUserStore{}, stubSessionStore{cleared: &cleared}, stubSettingsStore{}, stubLedger{}, &stubHub{})
	if err := directory.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected session cleared once, got %d", cleared)
	}
}

func TestCurrentResolvesSession(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{
		users: []models.Account{{ID: "user-1", Name: "Alice"}},
	}, stubSessionStore{session: store.Session{UserID: "user-1"}, has: true}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	account, ok, err := directory.Current(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected current account, got ok=%v err=%v", ok, err)
	}
	if account.Name != "Alice" {
		t.Fatalf("unexpected account: %#v", account)
	}
}

func TestCurrentDanglingSession(t *testing.T) {
	directory := New(fakeTxRunner{}, stubUserStore{},
		stubSessionStore{session: store.Session{UserID: "deleted"}, has: true}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	_, ok, err := directory.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no account for dangling session")
	}
}

func TestSetBlocked(t *testing.T) {
	var saved []models.Account
	directory := New(fakeTxRunner{}, stubUserStore{
		users: []models.Account{{ID: "user-1"}},
		saved: &saved,
	}, stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	account, err := directory.SetBlocked(context.Background(), "user-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.IsBlocked || !saved[0].IsBlocked {
		t.Fatalf("expected blocked flag set")
	}

	if _, err := directory.SetBlocked(context.Background(), "ghost", true); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	var saved []models.Account
	directory := New(fakeTxRunner{}, stubUserStore{saved: &saved}, stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})

	if err := directory.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 1 || saved[0].Role != models.RoleAdmin {
		t.Fatalf("expected seeded admin, got %#v", saved)
	}
	if saved[0].PasswordHash == "" || saved[0].PasswordHash == "s3cret-pass" {
		t.Fatalf("expected hashed admin password")
	}

	// an existing admin short-circuits the seed
	saved = nil
	directory = New(fakeTxRunner{}, stubUserStore{
		users: []models.Account{{ID: "admin-1", Role: models.RoleAdmin}},
		saved: &saved,
	}, stubSessionStore{}, stubSettingsStore{}, stubLedger{}, &stubHub{})
	if err := directory.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("expected no save when admin exists, got %#v", saved)
	}
}

func TestReferralCodesUnique(t *testing.T) {
	users := []models.Account{
		{ID: "u-1", ReferralCode: "REF0001"},
		{ID: "u-2", ReferralCode: "REF0002"},
	}
	seen := map[string]struct{}{"REF0001": {}, "REF0002": {}}
	for i := 0; i < 50; i++ {
		code := generateReferralCode(users)
		if _, ok := seen[code]; ok {
			t.Fatalf("generated colliding code %q", code)
		}
	}
}
