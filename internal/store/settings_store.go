package store

import (
	"context"

	"spinrewards/internal/models"
)

type SettingsStore struct {
	db DB
}

func NewSettingsStore(db DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored settings, or DefaultSettings when the key is
// missing or unreadable.
func (s *SettingsStore) Get(ctx context.Context) (models.AppSettings, error) {
	var settings models.AppSettings
	found, err := loadJSON(ctx, s.db, KeySettings, &settings)
	if err != nil {
		return models.AppSettings{}, err
	}
	if !found {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// GetTx reads settings inside a transaction so an operation sees one
// consistent snapshot for all of its checks.
func (s *SettingsStore) GetTx(ctx context.Context, tx Getter) (models.AppSettings, error) {
	var settings models.AppSettings
	found, err := loadJSON(ctx, tx, KeySettings, &settings)
	if err != nil {
		return models.AppSettings{}, err
	}
	if !found {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, tx Execer, settings models.AppSettings) error {
	return saveJSON(ctx, tx, KeySettings, settings)
}
