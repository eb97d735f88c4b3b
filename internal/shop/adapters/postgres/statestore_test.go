//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dejobratic/shoplite/internal/database"
	"github.com/dejobratic/shoplite/internal/shop/adapters/postgres"
	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	migrationsPath := filepath.Join(findProjectRoot(t), "migrations")
	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func TestStateStorePostgres(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	store := postgres.NewStateStore(pool)

	t.Run("returns nil before anything is saved", func(t *testing.T) {
		state, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state, got %+v", state)
		}
	})

	t.Run("round-trips the saved blob", func(t *testing.T) {
		saved := domain.State{
			LoggedIn: true,
			CartLines: []domain.CartLine{
				{ProductID: "p1", Name: "Kettle", PriceCents: 1000, Quantity: 2},
			},
			Orders: []domain.Order{{ID: "ORD1", TotalCents: 2000, DeliveryAddress: "1 Main St"}},
			Theme:  "dark",
		}

		if err := store.Save(ctx, saved); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected state, got nil")
		}
		if !loaded.LoggedIn || loaded.Theme != "dark" {
			t.Errorf("unexpected state: %+v", loaded)
		}
		if len(loaded.CartLines) != 1 || loaded.CartLines[0].PriceCents != 1000 {
			t.Errorf("unexpected cart lines: %+v", loaded.CartLines)
		}
		if len(loaded.Orders) != 1 || loaded.Orders[0].ID != "ORD1" {
			t.Errorf("unexpected orders: %+v", loaded.Orders)
		}
	})

	t.Run("last writer wins on repeated saves", func(t *testing.T) {
		if err := store.Save(ctx, domain.State{Theme: "light"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Save(ctx, domain.State{Theme: "dark"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Theme != "dark" {
			t.Errorf("expected theme dark, got %q", loaded.Theme)
		}
	})

	t.Run("clear removes all keys", func(t *testing.T) {
		if err := store.Save(ctx, domain.State{LoggedIn: true}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}

		state, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state after clear, got %+v", state)
		}
	})
}
