package rewards

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"spinrewards/internal/db"
	"spinrewards/internal/models"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"

	"github.com/jmoiron/sqlx"
)

var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrNoSpinsLeft       = errors.New("no spins left")
	ErrAdsDisabled       = errors.New("this ad placement is disabled")
	ErrInvalidAdKind     = errors.New("invalid ad kind")
	ErrDailyBonusClaimed = errors.New("daily bonus already claimed")
)

type AdKind string

const (
	AdRewarded     AdKind = "REWARDED"
	AdFreeSpin     AdKind = "SPIN"
	AdInterstitial AdKind = "INTERSTITIAL"
	AdNavigation   AdKind = "NAVIGATION"
)

const (
	interstitialBonus = 10
	dailyBonusCoins   = 50
)

// segment is one slice of the wheel. Coins 0 with ExtraSpin false is the
// "try again" outcome.
type segment struct {
	Label     string
	Coins     int64
	ExtraSpin bool
}

var wheel = []segment{
	{Label: "50", Coins: 50},
	{Label: "SPIN", ExtraSpin: true},
	{Label: "20", Coins: 20},
	{Label: "TRY", Coins: 0},
	{Label: "100", Coins: 100},
	{Label: "10", Coins: 10},
	{Label: "SPIN", ExtraSpin: true},
	{Label: "500", Coins: 500},
}

type UserStore interface {
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.Account, error)
	Save(ctx context.Context, tx store.Execer, users []models.Account) error
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

// Service covers the earn side of the coin economy: wheel spins, ad rewards
// and the daily check-in. All credits flow through the ledger.
type Service struct {
	txRunner db.TxRunner
	users    UserStore
	settings SettingsStore
	ledger   Ledger
	hub      CoinHub
	pick     func(n int) int
}

func New(txRunner db.TxRunner, users UserStore, settings SettingsStore, ledger Ledger, hub CoinHub) *Service {
	return &Service{
		txRunner: txRunner,
		users:    users,
		settings: settings,
		ledger:   ledger,
		hub:      hub,
		pick:     rand.Intn,
	}
}

type SpinResult struct {
	Label     string `json:"label"`
	Coins     int64  `json:"coins"`
	ExtraSpin bool   `json:"extra_spin"`
	SpinsLeft int    `json:"spins_left"`
	Balance   int64  `json:"balance"`
}

// Spin consumes one spin credit, bumps the lifetime counter, and lands on a
// uniformly random wheel segment. Coin segments credit through the ledger;
// the SPIN segment refunds the credit with a zero-amount entry; TRY records
// nothing.
func (s *Service) Spin(ctx context.Context, userID string) (SpinResult, error) {
	var result SpinResult
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := s.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		idx := findUser(users, userID)
		if idx < 0 {
			return ErrUnknownAccount
		}
		if users[idx].Spins <= 0 {
			return ErrNoSpinsLeft
		}
		landed := wheel[s.pick(len(wheel))]
		users[idx].Spins--
		users[idx].TotalSpins++
		if landed.ExtraSpin {
			users[idx].Spins++
		}
		result = SpinResult{
			Label:     landed.Label,
			Coins:     landed.Coins,
			ExtraSpin: landed.ExtraSpin,
			SpinsLeft: users[idx].Spins,
			Balance:   users[idx].Coins,
		}
		if err := s.users.Save(ctx, tx, users); err != nil {
			return err
		}
		switch {
		case landed.Coins > 0:
			_, result.Balance, err = s.ledger.RecordTx(ctx, tx, userID, models.TxSpinReward, landed.Coins, "Won from Spin Wheel")
		case landed.ExtraSpin:
			_, result.Balance, err = s.ledger.RecordTx(ctx, tx, userID, models.TxSpinReward, 0, "Won Extra Spin")
		}
		return err
	})
	if err != nil {
		return SpinResult{}, err
	}
	s.hub.BroadcastCoins(userID, websocket.CoinUpdate{UserID: userID, Coins: result.Balance})
	return result, nil
}

type AdResult struct {
	Coins     int64 `json:"coins"`
	SpinsLeft int   `json:"spins_left"`
	Balance   int64 `json:"balance"`
}

// WatchAd credits the reward for one simulated ad view and bumps the
// lifetime counter. The placement must be enabled in settings.
func (s *Service) WatchAd(ctx context.Context, userID string, kind AdKind) (AdResult, error) {
	var result AdResult
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		settings, err := s.settings.GetTx(ctx, tx)
		if err != nil {
			return err
		}
		var amount int64
		var description string
		switch kind {
		case AdRewarded:
			if !settings.RewardedAdsEnabled {
				return ErrAdsDisabled
			}
			amount = settings.CoinsPerAd
			description = "Watched Rewarded Ad"
		case AdFreeSpin:
			if !settings.RewardedAdsEnabled {
				return ErrAdsDisabled
			}
			amount = 0
			description = "Ad Reward: +1 Free Spin"
		case AdInterstitial:
			if !settings.InterstitialAdsEnabled {
				return ErrAdsDisabled
			}
			amount = interstitialBonus
			description = "Interstitial Ad Bonus"
		case AdNavigation:
			if !settings.NavigationAdsEnabled {
				return ErrAdsDisabled
			}
			amount = settings.NavigationAdReward
			description = "Navigation Ad Reward"
		default:
			return ErrInvalidAdKind
		}
		users, err := s.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		idx := findUser(users, userID)
		if idx < 0 {
			return ErrUnknownAccount
		}
		users[idx].TotalAdsWatched++
		if kind == AdFreeSpin {
			users[idx].Spins++
		}
		result = AdResult{Coins: amount, SpinsLeft: users[idx].Spins, Balance: users[idx].Coins}
		if err := s.users.Save(ctx, tx, users); err != nil {
			return err
		}
		_, result.Balance, err = s.ledger.RecordTx(ctx, tx, userID, models.TxAdReward, amount, description)
		return err
	})
	if err != nil {
		return AdResult{}, err
	}
	s.hub.BroadcastCoins(userID, websocket.CoinUpdate{UserID: userID, Coins: result.Balance})
	return result, nil
}

type DailyResult struct {
	Coins   int64 `json:"coins"`
	Balance int64 `json:"balance"`
}

// ClaimDaily grants the check-in bonus once per calendar day, gated on the
// lastDailyBonus date stamp.
func (s *Service) ClaimDaily(ctx context.Context, userID string) (DailyResult, error) {
	var result DailyResult
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		users, err := s.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		idx := findUser(users, userID)
		if idx < 0 {
			return ErrUnknownAccount
		}
		today := time.Now().Format("2006-01-02")
		if users[idx].LastDailyBonus == today {
			return ErrDailyBonusClaimed
		}
		users[idx].LastDailyBonus = today
		if err := s.users.Save(ctx, tx, users); err != nil {
			return err
		}
		result.Coins = dailyBonusCoins
		_, result.Balance, err = s.ledger.RecordTx(ctx, tx, userID, models.TxDailyCheckin, dailyBonusCoins, "Daily Check-in Bonus")
		return err
	})
	if err != nil {
		return DailyResult{}, err
	}
	s.hub.BroadcastCoins(userID, websocket.CoinUpdate{UserID: userID, Coins: result.Balance})
	return result, nil
}

func findUser(users []models.Account, userID string) int {
	for i := range users {
		if users[i].ID == userID {
			return i
		}
	}
	return -1
}
