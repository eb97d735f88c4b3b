package ports

import (
	"context"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

// StateStore persists the session state blob. The owning service writes the
// blob after every mutation; Load returns (nil, nil) when nothing has been
// persisted yet.
type StateStore interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state domain.State) error
	Clear(ctx context.Context) error
}
