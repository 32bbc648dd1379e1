package stats

import (
	"context"

	"spinrewards/internal/models"
)

type UserStore interface {
	All(ctx context.Context) ([]models.Account, error)
}

type WithdrawStore interface {
	All(ctx context.Context) ([]models.WithdrawRequest, error)
}

// Aggregator computes dashboard projections on demand. Pure read, no
// caching; admin accounts are excluded from the user figures.
type Aggregator struct {
	users       UserStore
	withdrawals WithdrawStore
}

func New(users UserStore, withdrawals WithdrawStore) *Aggregator {
	return &Aggregator{users: users, withdrawals: withdrawals}
}

type Summary struct {
	TotalUsers         int   `json:"total_users"`
	ActiveUsers        int   `json:"active_users"`
	TotalCoins         int64 `json:"total_coins"`
	TotalSpins         int   `json:"total_spins"`
	TotalAdsWatched    int   `json:"total_ads_watched"`
	PendingWithdrawals int   `json:"pending_withdrawals"`
}

func (a *Aggregator) Summarize(ctx context.Context) (Summary, error) {
	users, err := a.users.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	withdrawals, err := a.withdrawals.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	for i := range users {
		if users[i].Role == models.RoleAdmin {
			continue
		}
		summary.TotalUsers++
		if !users[i].IsBlocked {
			summary.ActiveUsers++
		}
		summary.TotalCoins += users[i].Coins
		summary.TotalSpins += users[i].TotalSpins
		summary.TotalAdsWatched += users[i].TotalAdsWatched
	}
	for i := range withdrawals {
		if withdrawals[i].Status == models.WithdrawPending {
			summary.PendingWithdrawals++
		}
	}
	return summary, nil
}
