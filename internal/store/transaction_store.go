package store

import (
	"context"

	"spinrewards/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) All(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	found, err := loadJSON(ctx, s.db, KeyTransactions, &transactions)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionStore) AllForUpdate(ctx context.Context, tx Getter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	found, err := loadJSONForUpdate(ctx, tx, KeyTransactions, &transactions)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionStore) Save(ctx context.Context, tx Execer, transactions []models.Transaction) error {
	return saveJSON(ctx, tx, KeyTransactions, transactions)
}
