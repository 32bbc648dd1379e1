package withdraw

import (
	"context"
	"errors"
	"sort"
	"time"

	"spinrewards/internal/db"
	"spinrewards/internal/models"
	"spinrewards/internal/store"
	"spinrewards/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListAll selects every request system-wide.
const ListAll = "ALL"

var (
	ErrWithdrawalsDisabled = errors.New("withdrawals are currently disabled by the administrator")
	ErrBelowMinimum        = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient coins")
	ErrRequestNotFound     = errors.New("withdraw request not found")
	ErrInvalidStatus       = errors.New("invalid withdraw status")
)

type WithdrawStore interface {
	All(ctx context.Context) ([]models.WithdrawRequest, error)
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.WithdrawRequest, error)
	Save(ctx context.Context, tx store.Execer, requests []models.WithdrawRequest) error
}

type UserStore interface {
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.Account, error)
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

// Workflow is the withdrawal state machine: PENDING at creation, then a
// single transition to APPROVED or REJECTED. Coins are reserved at request
// time; rejection issues the compensating credit.
type Workflow struct {
	txRunner    db.TxRunner
	withdrawals WithdrawStore
	users       UserStore
	settings    SettingsStore
	ledger      Ledger
	hub         CoinHub
}

func New(txRunner db.TxRunner, withdrawals WithdrawStore, users UserStore, settings SettingsStore, ledger Ledger, hub CoinHub) *Workflow {
	return &Workflow{
		txRunner:    txRunner,
		withdrawals: withdrawals,
		users:       users,
		settings:    settings,
		ledger:      ledger,
		hub:         hub,
	}
}

// Request creates a PENDING withdrawal and immediately debits the balance.
// Eligibility is checked against the settings snapshot and the locked user
// record; on any failure nothing is written.
func (w *Workflow) Request(ctx context.Context, userID, userName, method string, amount int64, accountDetails string) (models.WithdrawRequest, error) {
	var request models.WithdrawRequest
	var coinsAfter int64
	err := w.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		settings, err := w.settings.GetTx(ctx, tx)
		if err != nil {
			return err
		}
		if !settings.WithdrawalsEnabled {
			return ErrWithdrawalsDisabled
		}
		if amount < settings.MinWithdraw {
			return ErrBelowMinimum
		}
		users, err := w.users.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		var account *models.Account
		for i := range users {
			if users[i].ID == userID {
				account = &users[i]
				break
			}
		}
		if account == nil || account.Coins < amount {
			return ErrInsufficientBalance
		}
		requests, err := w.withdrawals.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		request = models.WithdrawRequest{
			ID:             uuid.NewString(),
			UserID:         userID,
			UserName:       userName,
			Method:         method,
			Amount:         amount,
			AccountDetails: accountDetails,
			Status:         models.WithdrawPending,
			Date:           time.Now().UTC(),
		}
		requests = append(requests, request)
		if err := w.withdrawals.Save(ctx, tx, requests); err != nil {
			return err
		}
		_, coinsAfter, err = w.ledger.RecordTx(ctx, tx, userID, models.TxWithdrawal, amount, "Withdrawal Request via "+method)
		return err
	})
	if err != nil {
		return models.WithdrawRequest{}, err
	}
	w.hub.BroadcastCoins(userID, websocket.CoinUpdate{UserID: userID, Coins: coinsAfter})
	return request, nil
}

// SetStatus transitions a PENDING request to APPROVED or REJECTED. Approval
// has no balance effect; rejection credits the amount back exactly once. A
// request already in a terminal state is left untouched.
func (w *Workflow) SetStatus(ctx context.Context, requestID string, status models.WithdrawStatus) (models.WithdrawRequest, error) {
	if status != models.WithdrawApproved && status != models.WithdrawRejected {
		return models.WithdrawRequest{}, ErrInvalidStatus
	}
	var request models.WithdrawRequest
	var refunded bool
	var coinsAfter int64
	err := w.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		requests, err := w.withdrawals.AllForUpdate(ctx, tx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range requests {
			if requests[i].ID == requestID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrRequestNotFound
		}
		if requests[idx].Status != models.WithdrawPending {
			request = requests[idx]
			return nil
		}
		if status == models.WithdrawRejected {
			_, coinsAfter, err = w.ledger.RecordTx(ctx, tx, requests[idx].UserID, models.TxSpinReward, requests[idx].Amount, "Refund: Withdrawal Rejected")
			if err != nil {
				return err
			}
			refunded = true
		}
		requests[idx].Status = status
		request = requests[idx]
		return w.withdrawals.Save(ctx, tx, requests)
	})
	if err != nil {
		return models.WithdrawRequest{}, err
	}
	if refunded {
		w.hub.BroadcastCoins(request.UserID, websocket.CoinUpdate{UserID: request.UserID, Coins: coinsAfter})
	}
	return request, nil
}

// List returns requests for one user, or all of them when userID is ListAll,
// newest first.
func (w *Workflow) List(ctx context.Context, userID string) ([]models.WithdrawRequest, error) {
	all, err := w.withdrawals.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := all
	if userID != ListAll {
		filtered = make([]models.WithdrawRequest, 0, len(all))
		for _, request := range all {
			if request.UserID == userID {
				filtered = append(filtered, request)
			}
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered, nil
}
