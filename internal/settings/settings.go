package settings

import (
	"context"

	"spinrewards/internal/db"
	"spinrewards/internal/models"
	"spinrewards/internal/store"

	"github.com/jmoiron/sqlx"
)

type SettingsStore interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Save(ctx context.Context, tx store.Execer, settings models.AppSettings) error
}

// Registry holds the single mutable configuration object. Writes replace it
// wholesale; there is no field-level merge or validation.
type Registry struct {
	txRunner db.TxRunner
	settings SettingsStore
}

func New(txRunner db.TxRunner, settings SettingsStore) *Registry {
	return &Registry{txRunner: txRunner, settings: settings}
}

func (r *Registry) Get(ctx context.Context) (models.AppSettings, error) {
	return r.settings.Get(ctx)
}

func (r *Registry) Set(ctx context.Context, settings models.AppSettings) error {
	return r.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return r.settings.Save(ctx, tx, settings)
	})
}

// Themes is the fixed catalog the active theme id points into.
func (r *Registry) Themes() []models.Theme {
	return models.AvailableThemes()
}
