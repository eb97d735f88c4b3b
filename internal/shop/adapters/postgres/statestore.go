package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The persisted blob is four keys, mirroring the local-storage layout the
// session state was designed around.
const (
	keyLoggedIn = "logged_in"
	keyCart     = "cart"
	keyOrders   = "orders"
	keyTheme    = "theme"
)

// StateStore persists the session blob in a key/JSONB table. All four keys
// are written in one transaction so a save or clear is never partial.
type StateStore struct {
	pool *pgxpool.Pool
}

func NewStateStore(pool *pgxpool.Pool) *StateStore {
	return &StateStore{pool: pool}
}

func (s *StateStore) Load(ctx context.Context) (*domain.State, error) {
	query := `
		SELECT key, value
		FROM shop_state
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query shop state: %w", err)
	}
	defer rows.Close()

	values := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan shop state row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shop state: %w", err)
	}

	if len(values) == 0 {
		return nil, nil
	}

	var state domain.State
	if raw, ok := values[keyLoggedIn]; ok {
		if err := json.Unmarshal(raw, &state.LoggedIn); err != nil {
			return nil, fmt.Errorf("decode logged_in: %w", err)
		}
	}
	if raw, ok := values[keyCart]; ok {
		if err := json.Unmarshal(raw, &state.CartLines); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	if raw, ok := values[keyOrders]; ok {
		if err := json.Unmarshal(raw, &state.Orders); err != nil {
			return nil, fmt.Errorf("decode orders: %w", err)
		}
	}
	if raw, ok := values[keyTheme]; ok {
		if err := json.Unmarshal(raw, &state.Theme); err != nil {
			return nil, fmt.Errorf("decode theme: %w", err)
		}
	}

	return &state, nil
}

func (s *StateStore) Save(ctx context.Context, state domain.State) error {
	entries := []struct {
		key   string
		value any
	}{
		{keyLoggedIn, state.LoggedIn},
		{keyCart, state.CartLines},
		{keyOrders, state.Orders},
		{keyTheme, state.Theme},
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO shop_state (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = now()
		`

		for _, entry := range entries {
			raw, err := json.Marshal(entry.value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", entry.key, err)
			}
			if _, err := tx.Exec(ctx, query, entry.key, raw); err != nil {
				return fmt.Errorf("upsert %s: %w", entry.key, err)
			}
		}
		return nil
	})
}

func (s *StateStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM shop_state`); err != nil {
		return fmt.Errorf("clear shop state: %w", err)
	}
	return nil
}
