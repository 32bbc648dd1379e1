package stats

import (
	"context"
	"testing"

	"spinrewards/internal/models"
)

type stubUserStore struct {
	users []models.Account
}

func (s stubUserStore) All(context.Context) ([]models.Account, error) {
	return s.users, nil
}

type stubWithdrawStore struct {
	requests []models.WithdrawRequest
}

func (s stubWithdrawStore) All(context.Context) ([]models.WithdrawRequest, error) {
	return s.requests, nil
}

func TestSummarize(t *testing.T) {
	aggregator := New(stubUserStore{
		users: []models.Account{
			{ID: "admin-1", Role: models.RoleAdmin, Coins: 9999},
			{ID: "user-1", Role: models.RoleUser, Coins: 100, TotalSpins: 4, TotalAdsWatched: 2},
			{ID: "user-2", Role: models.RoleUser, Coins: 300, TotalSpins: 1, TotalAdsWatched: 5, IsBlocked: true},
		},
	}, stubWithdrawStore{
		requests: []models.WithdrawRequest{
			{ID: "w-1", Status: models.WithdrawPending},
			{ID: "w-2", Status: models.WithdrawApproved},
			{ID: "w-3", Status: models.WithdrawPending},
		},
	})

	summary, err := aggregator.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalUsers != 2 || summary.ActiveUsers != 1 {
		t.Fatalf("unexpected user counts: %#v", summary)
	}
	if summary.TotalCoins != 400 || summary.TotalSpins != 5 || summary.TotalAdsWatched != 7 {
		t.Fatalf("unexpected totals: %#v", summary)
	}
	if summary.PendingWithdrawals != 2 {
		t.Fatalf("unexpected pending count: %d", summary.PendingWithdrawals)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := New(stubUserStore{}, stubWithdrawStore{}).Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != (Summary{}) {
		t.Fatalf("expected zero summary, got %#v", summary)
	}
}
