// Package postgres persists checkout idempotency records in the
// checkout_idempotency table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dejobratic/shoplite/internal/shop/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectResponseSQL = `SELECT status_code, body, order_id FROM checkout_idempotency WHERE key = $1`

	// ON CONFLICT DO NOTHING gives first-writer-wins across concurrent
	// duplicate submissions.
	insertResponseSQL = `INSERT INTO checkout_idempotency (key, status_code, body, order_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO NOTHING`
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the recorded checkout response for key, or nil when the key
// has not been seen.
func (s *Store) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	var (
		statusCode int
		body       []byte
		orderID    string
	)

	err := s.pool.QueryRow(ctx, selectResponseSQL, key).Scan(&statusCode, &body, &orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query checkout idempotency key: %w", err)
	}

	return &ports.StoredResponse{
		StatusCode: statusCode,
		Body:       body,
		OrderID:    orderID,
	}, nil
}

// Save records the checkout response for key. A key that already holds a
// response keeps its first one.
func (s *Store) Save(ctx context.Context, key string, response ports.StoredResponse) error {
	_, err := s.pool.Exec(ctx, insertResponseSQL, key, response.StatusCode, response.Body, response.OrderID)
	if err != nil {
		return fmt.Errorf("record checkout idempotency key: %w", err)
	}
	return nil
}
