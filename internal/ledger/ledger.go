package ledger

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

// HistoryAll selects every transaction system-wide.
const HistoryAll = "ALL"

var (
	ErrUnknownAccount = errors.New("unknown account")
	ErrInvalidAmount  = errors.New("invalid amount")
)

type UserStore interface {
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.Account, error)
	Save(ctx context.Context, tx store.Execer, users []models.Account) error
}

type TransactionStore interface {
	All(ctx context.Context) ([]models.Transaction, error)
	AllForUpdate(ctx context.Context, tx store.Getter) ([]models.Transaction, error)
	Save(ctx context.Context, tx store.Execer, transactions []models.Transaction) error
}

type CoinHub interface {
	BroadcastCoins(userID string, update websocket.CoinUpdate)
}

// Ledger is the only component that changes coin balances: every change is
// an appended Transaction plus the matching delta on the account, applied in
// one database transaction.
type Ledger struct {
	txRunner     db.TxRunner
	users        UserStore
	transactions TransactionStore
	hub          CoinHub
}

func New(txRunner db.TxRunner, users UserStore, transactions TransactionStore, hub CoinHub) *Ledger {
	return &Ledger{
		txRunner:     txRunner,
		users:        users,
		transactions: transactions,
		hub:          hub,
	}
}

// Record appends a transaction and applies its balance delta. The account is
// validated first; an unknown user id records nothing and returns
// ErrUnknownAccount.
func (l *Ledger) Record(ctx context.Context, userID string, txType models.TransactionType, amount int64, description string) (models.Transaction, error) {
	var entry models.Transaction
	var coins int64
	err := l.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		entry, coins, err = l.RecordTx(ctx, tx, userID, txType, amount, description)
		return err
	})
	if err != nil {
		return models.Transaction{}, err
	}
	l.hub.BroadcastCoins(userID, websocket.CoinUpdate{UserID: userID, Coins: coins})
	return entry, nil
}

// RecordTx is Record inside a caller-owned transaction, for operations that
// bundle a balance change with other collection writes. It returns the new
// coin total; the caller is responsible for broadcasting it after commit.
func (l *Ledger) RecordTx(ctx context.Context, tx store.Tx, userID string, txType models.TransactionType, amount int64, description string) (models.Transaction, int64, error) {
	if amount < 0 {
		return models.Transaction{}, 0, ErrInvalidAmount
	}
	users, err := l.users.AllForUpdate(ctx, tx)
	if err != nil {
		return models.Transaction{}, 0, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Transaction{}, 0, ErrUnknownAccount
	}
	entry := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        time.Now().UTC(),
	}
	transactions, err := l.transactions.AllForUpdate(ctx, tx)
	if err != nil {
		return models.Transaction{}, 0, err
	}
	transactions = append(transactions, entry)
	if err := l.transactions.Save(ctx, tx, transactions); err != nil {
		return models.Transaction{}, 0, err
	}
	if txType == models.TxWithdrawal {
		users[idx].Coins -= amount
	} else {
		users[idx].Coins += amount
	}
	if err := l.users.Save(ctx, tx, users); err != nil {
		return models.Transaction{}, 0, err
	}
	return entry, users[idx].Coins, nil
}

// History returns transactions for one user, or all of them when userID is
// HistoryAll, newest first.
func (l *Ledger) History(ctx context.Context, userID string) ([]models.Transaction, error) {
	all, err := l.transactions.All(ctx)
	if err != nil {
		return nil, err
	}
	filtered := all
	if userID != HistoryAll {
		filtered = make([]models.Transaction, 0, len(all))
		for _, entry := range all {
			if entry.UserID == userID {
				filtered = append(filtered, entry)
			}
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered, nil
}
