package domain_test

import (
	"testing"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

func TestCartAddItem(t *testing.T) {
	t.Run("inserts a new line with quantity one", func(t *testing.T) {
		cart := domain.NewCart()

		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		lines := cart.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", lines[0].Quantity)
		}
		if lines[0].PriceCents != 1000 {
			t.Errorf("expected price 1000, got %d", lines[0].PriceCents)
		}
	})

	t.Run("merges repeated adds into one line", func(t *testing.T) {
		cart := domain.NewCart()
		product := domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000}

		cart.AddItem(product)
		cart.AddItem(product)

		lines := cart.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line after duplicate add, got %d", len(lines))
		}
		if lines[0].Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", lines[0].Quantity)
		}
	})

	t.Run("preserves insertion order across products", func(t *testing.T) {
		cart := domain.NewCart()

		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.AddItem(domain.Product{ID: "p2", Name: "Mug", PriceCents: 500})
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		lines := cart.Lines()
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0].ProductID != "p1" || lines[1].ProductID != "p2" {
			t.Errorf("expected order [p1 p2], got [%s %s]", lines[0].ProductID, lines[1].ProductID)
		}
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("replaces the quantity of an existing line", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		cart.SetQuantity("p1", 5)

		if got := cart.Lines()[0].Quantity; got != 5 {
			t.Errorf("expected quantity 5, got %d", got)
		}
	})

	t.Run("removes the line when quantity is zero", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		cart.SetQuantity("p1", 0)

		if !cart.IsEmpty() {
			t.Errorf("expected empty cart, got %d lines", cart.Len())
		}
	})

	t.Run("removes the line when quantity is negative", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		cart.SetQuantity("p1", -1)

		if !cart.IsEmpty() {
			t.Errorf("expected empty cart, got %d lines", cart.Len())
		}
	})

	t.Run("is a no-op for an absent product id", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		cart.SetQuantity("missing", 3)

		lines := cart.Lines()
		if len(lines) != 1 || lines[0].Quantity != 1 {
			t.Errorf("expected p1 untouched, got %+v", lines)
		}
	})
}

func TestCartRemoveItem(t *testing.T) {
	t.Run("deletes the line if present", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.AddItem(domain.Product{ID: "p2", Name: "Mug", PriceCents: 500})

		cart.RemoveItem("p1")

		lines := cart.Lines()
		if len(lines) != 1 || lines[0].ProductID != "p2" {
			t.Errorf("expected only p2 to remain, got %+v", lines)
		}
	})

	t.Run("is a no-op for an absent product id", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

		cart.RemoveItem("missing")

		if cart.Len() != 1 {
			t.Errorf("expected 1 line, got %d", cart.Len())
		}
	})
}

func TestCartTotal(t *testing.T) {
	t.Run("returns zero for an empty cart", func(t *testing.T) {
		cart := domain.NewCart()

		if got := cart.TotalCents(); got != 0 {
			t.Errorf("expected total 0, got %d", got)
		}
	})

	t.Run("sums price times quantity over all lines", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.AddItem(domain.Product{ID: "p2", Name: "Mug", PriceCents: 500})

		if got := cart.TotalCents(); got != 2500 {
			t.Errorf("expected total 2500, got %d", got)
		}
	})

	t.Run("tracks mutations without caching", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.SetQuantity("p1", 4)
		cart.AddItem(domain.Product{ID: "p2", Name: "Mug", PriceCents: 500})
		cart.RemoveItem("p2")

		if got := cart.TotalCents(); got != 4000 {
			t.Errorf("expected total 4000, got %d", got)
		}
	})
}

func TestCartClear(t *testing.T) {
	t.Run("empties all lines", func(t *testing.T) {
		cart := domain.NewCart()
		cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})
		cart.AddItem(domain.Product{ID: "p2", Name: "Mug", PriceCents: 500})

		cart.Clear()

		if !cart.IsEmpty() {
			t.Errorf("expected empty cart, got %d lines", cart.Len())
		}
		if got := cart.TotalCents(); got != 0 {
			t.Errorf("expected total 0 after clear, got %d", got)
		}
	})
}

func TestRestoreCart(t *testing.T) {
	t.Run("rebuilds lines in order", func(t *testing.T) {
		cart := domain.RestoreCart([]domain.CartLine{
			{ProductID: "p1", Name: "Kettle", PriceCents: 1000, Quantity: 2},
			{ProductID: "p2", Name: "Mug", PriceCents: 500, Quantity: 1},
		})

		if got := cart.TotalCents(); got != 2500 {
			t.Errorf("expected total 2500, got %d", got)
		}
		if cart.Len() != 2 {
			t.Errorf("expected 2 lines, got %d", cart.Len())
		}
	})

	t.Run("drops non-positive quantities and merges duplicates", func(t *testing.T) {
		cart := domain.RestoreCart([]domain.CartLine{
			{ProductID: "p1", PriceCents: 1000, Quantity: 1},
			{ProductID: "p1", PriceCents: 1000, Quantity: 2},
			{ProductID: "p2", PriceCents: 500, Quantity: 0},
		})

		lines := cart.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Quantity != 3 {
			t.Errorf("expected merged quantity 3, got %d", lines[0].Quantity)
		}
	})
}

func TestCartLinesIsACopy(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(domain.Product{ID: "p1", Name: "Kettle", PriceCents: 1000})

	lines := cart.Lines()
	lines[0].Quantity = 99

	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("expected internal quantity 1, got %d", got)
	}
}
