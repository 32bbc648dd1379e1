package settings

import (
	"context"
	"testing"

	"spinrewards/internal/models"
	"spinrewards/internal/store"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

type stubSettingsStore struct {
	settings models.AppSettings
	saved    *[]models.AppSettings
}

func (s stubSettingsStore) Get(context.Context) (models.AppSettings, error) {
	return s.settings, nil
}

func (s stubSettingsStore) Save(_ context.Context, _ store.Execer, settings models.AppSettings) error {
	if s.saved != nil {
		*s.saved = append(*s.saved, settings)
	}
	return nil
}

func TestRegistryGet(t *testing.T) {
	want := models.DefaultSettings()
	want.MinWithdraw = 7000
	registry := New(fakeTxRunner{}, stubSettingsStore{settings: want})

	got, err := registry.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MinWithdraw != 7000 {
		t.Fatalf("unexpected settings: %#v", got)
	}
}

func TestRegistrySetReplacesWholesale(t *testing.T) {
	var saved []models.AppSettings
	registry := New(fakeTxRunner{}, stubSettingsStore{saved: &saved})

	next := models.DefaultSettings()
	next.WithdrawalsEnabled = false
	next.DailyFreeSpins = 10
	if err := registry.Set(context.Background(), next); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 1 || saved[0].WithdrawalsEnabled || saved[0].DailyFreeSpins != 10 {
		t.Fatalf("unexpected saved settings: %#v", saved)
	}
}

func TestThemesCatalog(t *testing.T) {
	themes := New(fakeTxRunner{}, stubSettingsStore{}).Themes()
	if len(themes) != 10 {
		t.Fatalf("expected 10 themes, got %d", len(themes))
	}
	seen := make(map[string]struct{}, len(themes))
	for _, theme := range themes {
		if theme.ID == "" || theme.Colors.Primary == "" {
			t.Fatalf("incomplete theme: %#v", theme)
		}
		if _, ok := seen[theme.ID]; ok {
			t.Fatalf("duplicate theme id %q", theme.ID)
		}
		seen[theme.ID] = struct{}{}
	}
}
