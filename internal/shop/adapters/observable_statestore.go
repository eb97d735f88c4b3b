package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/shoplite/internal/database"
	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
	"github.com/dejobratic/shoplite/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableStateStore struct {
	store   ports.StateStore
	metrics *database.Metrics
}

func NewObservableStateStore(store ports.StateStore, metrics *database.Metrics) *ObservableStateStore {
	return &ObservableStateStore{
		store:   store,
		metrics: metrics,
	}
}

func (s *ObservableStateStore) Load(ctx context.Context) (*domain.State, error) {
	ctx, span := telemetry.StartSpan(ctx, "StateStore.Load")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "load_state"),
	)

	start := time.Now()
	state, err := s.store.Load(ctx)
	duration := time.Since(start).Seconds()

	s.metrics.RecordQuery(ctx, "load_state", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return state, nil
}

func (s *ObservableStateStore) Save(ctx context.Context, state domain.State) error {
	ctx, span := telemetry.StartSpan(ctx, "StateStore.Save")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "save_state"),
		attribute.Int("cart.lines", len(state.CartLines)),
		attribute.Int("orders.count", len(state.Orders)),
	)

	start := time.Now()
	err := s.store.Save(ctx, state)
	duration := time.Since(start).Seconds()

	s.metrics.RecordQuery(ctx, "save_state", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (s *ObservableStateStore) Clear(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "StateStore.Clear")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "clear_state"),
	)

	start := time.Now()
	err := s.store.Clear(ctx)
	duration := time.Since(start).Seconds()

	s.metrics.RecordQuery(ctx, "clear_state", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
