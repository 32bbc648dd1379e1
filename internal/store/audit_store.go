package store

import (
	"context"
	"time"
)

type AuditEntry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actorId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Data       string    `json:"data"`
	Date       time.Time `json:"date"`
}

type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Append(ctx context.Context, tx Tx, entry AuditEntry) error {
	var entries []AuditEntry
	if _, err := loadJSONForUpdate(ctx, tx, KeyAuditLog, &entries); err != nil {
		return err
	}
	entries = append(entries, entry)
	return saveJSON(ctx, tx, KeyAuditLog, entries)
}

// List returns audit entries newest-first.
func (s *AuditStore) List(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	var entries []AuditEntry
	found, err := loadJSON(ctx, s.db, KeyAuditLog, &entries)
	if err != nil {
		return nil, err
	}
	if !found {
		return []AuditEntry{}, nil
	}
	reversed := make([]AuditEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	if offset >= len(reversed) {
		return []AuditEntry{}, nil
	}
	reversed = reversed[offset:]
	if limit > 0 && limit < len(reversed) {
		reversed = reversed[:limit]
	}
	return reversed, nil
}
