package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// Collection keys in app_state. Each key holds one JSON-encoded collection
// replaced wholesale on every write.
const (
	KeyUsers        = "users"
	KeyCurrentUser  = "current_user"
	KeySettings     = "settings"
	KeyWithdrawals  = "withdrawals"
	KeyTransactions = "transactions"
	KeyAuditLog     = "audit_log"
)

// loadJSON reads one collection. A missing row or an undecodable payload
// reports found=false so the caller falls back to its documented default;
// only genuine database errors propagate.
func loadJSON(ctx context.Context, q Getter, key string, dest any) (bool, error) {
	var raw []byte
	err := q.GetContext(ctx, &raw, `SELECT value FROM app_state WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// loadJSONForUpdate is loadJSON with a row lock, for read-mutate-write
// sequences inside a transaction.
func loadJSONForUpdate(ctx context.Context, tx Getter, key string, dest any) (bool, error) {
	var raw []byte
	err := tx.GetContext(ctx, &raw, `SELECT value FROM app_state WHERE key = $1 FOR UPDATE`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func saveJSON(ctx context.Context, tx Execer, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO app_state (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, raw)
	return err
}

func deleteKey(ctx context.Context, tx Execer, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM app_state WHERE key = $1`, key)
	return err
}
