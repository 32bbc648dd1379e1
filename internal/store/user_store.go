package store

import (
	"context"

	"spinrewards/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// All returns the users collection, empty when the key is missing or
// unreadable.
func (s *UserStore) All(ctx context.Context) ([]models.Account, error) {
	var users []models.Account
	found, err := loadJSON(ctx, s.db, KeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Account{}, nil
	}
	return users, nil
}

func (s *UserStore) AllForUpdate(ctx context.Context, tx Getter) ([]models.Account, error) {
	var users []models.Account
	found, err := loadJSONForUpdate(ctx, tx, KeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Account{}, nil
	}
	return users, nil
}

func (s *UserStore) Save(ctx context.Context, tx Execer, users []models.Account) error {
	return saveJSON(ctx, tx, KeyUsers, users)
}
