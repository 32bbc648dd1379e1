package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAuditStoreAppend(t *testing.T) {
	var raw []byte
	tx := stubTx{
		getFn: jsonRow(`[{"id":"a-1","action":"login"}]`),
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO app_state") {
				t.Fatalf("unexpected query: %s", query)
			}
			raw = args[1].([]byte)
			return stubResult{rows: 1}, nil
		},
	}
	store := NewAuditStore(stubDB{})
	err := store.Append(context.Background(), tx, AuditEntry{
		ID: "a-2", ActorID: "user-1", Action: "logout", Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var saved []AuditEntry
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatalf("failed to decode saved payload: %v", err)
	}
	if len(saved) != 2 || saved[0].ID != "a-1" || saved[1].ID != "a-2" {
		t.Fatalf("unexpected saved entries: %#v", saved)
	}
}

func TestAuditStoreListNewestFirst(t *testing.T) {
	store := NewAuditStore(stubDB{
		getFn: jsonRow(`[{"id":"a-1"},{"id":"a-2"},{"id":"a-3"}]`),
	})
	entries, err := store.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a-3" || entries[1].ID != "a-2" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestAuditStoreListOffsetBeyondEnd(t *testing.T) {
	store := NewAuditStore(stubDB{
		getFn: jsonRow(`[{"id":"a-1"}]`),
	})
	entries, err := store.List(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty page, got %#v", entries)
	}
}

func TestAuditStoreListEmpty(t *testing.T) {
	entries, err := NewAuditStore(stubDB{}).List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty slice, got %#v", entries)
	}
}
