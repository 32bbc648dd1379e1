package directory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"spinrewards/internal/auth"
	"spinrewards/internal/db"
	"spinrewards/internal/models"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrDuplicateAccount   = errors.New("account already exists with this email or mobile")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked by admin")
	ErrAccountNotFound    = errors.New("account not found")
)

type UserStore interface {
	All(ctx context.Context) ([]models.Account, error)
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.Account, error)
	Save(ctx context.Context, tx store.Execer, users []models.Account) error
}

type SessionStore interface {
	Get(ctx context.Context) (store.Session, bool, error)
	Save(ctx context.Context, tx store.Execer, session store.Session) error
	Clear(ctx context.Context, tx store.Execer) error
}

type SettingsStore interface {
	GetTx(ctx context.Context, tx store.Getter) (models.AppSettings, error)
}

type Ledger interface {
	RecordTx(ctx context.Context, tx store.Tx, userID string, txType models.TransactionType, amount int64, description string) (models.Transaction, int64, error)
}

type CoinHub interface {
	BroadcastCoins(userID string, update websocket.CoinUpdate)
}

// Directory owns account identity: registration, credential checks, the
// session pointer, and the block flag. Coin balances are out of its hands.
type Directory struct {
	txRunner db.TxRunner
	users    UserStore
	sessions SessionStore
	settings SettingsStore
	ledger   Ledger
	hub      CoinHub
}

func New(txRunner db.TxRunner, users UserStore, sessions SessionStore, settings SettingsStore, ledger Ledger, hub CoinHub) *Directory {
	return &Directory{
		txRunner: txRunner,
		users:    users,
		sessions: sessions,
		settings: settings,
		ledger:   ledger,
		hub:      hub,
	}
}

type RegisterInput struct {
	Name         string
	Email        string
	Mobile       string
	Password     string
	DeviceID     string
	ReferralCode string
}

// Register creates a new USER account, sets it as the current session, and
// credits the referrer when a known referral code is supplied. Email and
// mobile must not collide with an existing account.
func (d *Directory) Register(ctx context.Context, in RegisterInput) (models.Account, error) {
	var account models.Account
	var referrerID string
	var referrerCoins int64
	err := d.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := d.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		for i := range users {
			if (in.Email != "" && users[i].Email == in.Email) || (in.Mobile != "" && users[i].Mobile == in.Mobile) {
				return ErrDuplicateAccount
			}
		}
		settings, err := d.settings.GetTx(ctx, tx)
		if err != nil {
			return err
		}
		passwordHash := ""
		if in.Password != "" {
			passwordHash, err = auth.HashPassword(in.Password)
			if err != nil {
				return err
			}
		}
		deviceID := in.DeviceID
		if deviceID == "" {
			deviceID = uuid.NewString()
		}
		now := time.Now().UTC()
		account = models.Account{
			ID:           uuid.NewString(),
			Name:         in.Name,
			Email:        in.Email,
			Mobile:       in.Mobile,
			PasswordHash: passwordHash,
			Role:         models.RoleUser,
			Coins:        0,
			Spins:        settings.DailyFreeSpins,
			DeviceID:     deviceID,
			SignupDate:   now,
			LastLogin:    now,
			ReferralCode: generateReferralCode(users),
		}
		users = append(users, account)
		if err := d.users.Save(ctx, tx, users); err != nil {
			return err
		}
		if err := d.sessions.Save(ctx, tx, store.Session{UserID: account.ID, LoggedInAt: now}); err != nil {
			return err
		}
		if in.ReferralCode != "" {
			for i := range users {
				if users[i].ReferralCode == in.ReferralCode && users[i].ID != account.ID {
					_, coins, err := d.ledger.RecordTx(ctx, tx, users[i].ID, models.TxReferralBonus, settings.ReferBonus,
						fmt.Sprintf("Referral Bonus: %s joined", account.Name))
					if err != nil {
						return err
					}
					referrerID = users[i].ID
					referrerCoins = coins
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	if referrerID != "" {
		d.hub.BroadcastCoins(referrerID, websocket.CoinUpdate{UserID: referrerID, Coins: referrerCoins})
	}
	return account, nil
}

// Login resolves the identifier by mobile or email (name as a legacy
// fallback), verifies the password whenever the account has one set, and
// refuses blocked accounts. On success it stamps lastLogin and points the
// session at the account.
func (d *Directory) Login(ctx context.Context, identifier, secret string, byMobile bool) (models.Account, error) {
	var account models.Account
	err := d.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := d.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		idx := findByIdentifier(users, identifier, byMobile)
		if idx < 0 {
			return ErrInvalidCredentials
		}
		if users[idx].PasswordHash != "" && !auth.CheckPassword(users[idx].PasswordHash, secret) {
			return ErrInvalidCredentials
		}
		if users[idx].IsBlocked {
			return ErrAccountBlocked
		}
		now := time.Now().UTC()
		users[idx].LastLogin = now
		if err := d.users.Save(ctx, tx, users); err != nil {
			return err
		}
		if err := d.sessions.Save(ctx, tx, store.Session{UserID: users[idx].ID, LoggedInAt: now}); err != nil {
			return err
		}
		account = users[idx]
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Logout drops the session pointer; the account record is untouched.
func (d *Directory) Logout(ctx context.Context) error {
	return d.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return d.sessions.Clear(ctx, tx)
	})
}

// Current resolves the session pointer against the directory. The session
// stores only the account id, so a stale copy can never diverge from the
// source of truth.
func (d *Directory) Current(ctx context.Context) (models.Account, bool, error) {
	session, ok, err := d.sessions.Get(ctx)
	if err != nil || !ok {
		return models.Account{}, false, err
	}
	account, err := d.ByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return models.Account{}, false, nil
		}
		return models.Account{}, false, err
	}
	return account, true, nil
}

func (d *Directory) ByID(ctx context.Context, userID string) (models.Account, error) {
	users, err := d.users.All(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for i := range users {
		if users[i].ID == userID {
			return users[i], nil
		}
	}
	return models.Account{}, ErrAccountNotFound
}

func (d *Directory) List(ctx context.Context) ([]models.Account, error) {
	return d.users.All(ctx)
}

// SetBlocked toggles the block flag. An already-active session stays valid;
// the flag is only enforced at login.
func (d *Directory) SetBlocked(ctx context.Context, userID string, blocked bool) (models.Account, error) {
	var account models.Account
	err := d.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := d.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == userID {
				users[i].IsBlocked = blocked
				account = users[i]
				return d.users.Save(ctx, tx, users)
			}
		}
		return ErrAccountNotFound
	})
	if err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// EnsureAdmin seeds one ADMIN account at first run when none exists. Admins
// authenticate through the same login path as every other account.
func (d *Directory) EnsureAdmin(ctx context.Context, name, email, password string) error {
	return d.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := d.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].Role == models.RoleAdmin {
				return nil
			}
		}
		passwordHash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		users = append(users, models.Account{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
			DeviceID:     "SEED",
			SignupDate:   now,
			LastLogin:    now,
			ReferralCode: "ADMIN",
		})
		return d.users.Save(ctx, tx, users)
	})
}

func findByIdentifier(users []models.Account, identifier string, byMobile bool) int {
	for i := range users {
		if byMobile {
			if users[i].Mobile != "" && users[i].Mobile == identifier {
				return i
			}
		} else if users[i].Email != "" && strings.EqualFold(users[i].Email, identifier) {
			return i
		}
	}
	// legacy records were reachable by display name
	for i := range users {
		if users[i].Name == identifier {
			return i
		}
	}
	return -1
}

func generateReferralCode(users []models.Account) string {
	taken := make(map[string]struct{}, len(users))
	for i := range users {
		taken[users[i].ReferralCode] = struct{}{}
	}
	for attempt := 0; attempt < 100; attempt++ {
		code := fmt.Sprintf("REF%04d", rand.Intn(10000))
		if _, ok := taken[code]; !ok {
			return code
		}
	}
	return "REF" + strings.ToUpper(uuid.NewString()[:8])
}
