package store

import (
	"context"

	"spinrewards/internal/models"
)

type WithdrawStore struct {
	db DB
}

func NewWithdrawStore(db DB) *WithdrawStore {
	return &WithdrawStore{db: db}
}

func (s *WithdrawStore) All(ctx context.Context) ([]models.WithdrawRequest, error) {
	var requests []models.WithdrawRequest
	found, err := loadJSON(ctx, s.db, KeyWithdrawals, &requests)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.WithdrawRequest{}, nil
	}
	return requests, nil
}

func (s *WithdrawStore) AllForUpdate(ctx context.Context, tx Getter) ([]models.WithdrawRequest, error) {
	var requests []models.WithdrawRequest
	found, err := loadJSONForUpdate(ctx, tx, KeyWithdrawals, &requests)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.WithdrawRequest{}, nil
	}
	return requests, nil
}

func (s *WithdrawStore) Save(ctx context.Context, tx Execer, requests []models.WithdrawRequest) error {
	return saveJSON(ctx, tx, KeyWithdrawals, requests)
}
