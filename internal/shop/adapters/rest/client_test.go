package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dejobratic/shoplite/internal/shop/adapters/rest"
	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

func TestAuthenticate(t *testing.T) {
	t.Run("returns true when the service accepts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if body["passkey"] != "open-sesame" {
				t.Errorf("expected passkey open-sesame, got %q", body["passkey"])
			}
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		ok, err := client.Authenticate(context.Background(), "open-sesame")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !ok {
			t.Error("expected success")
		}
	})

	t.Run("returns false without error on explicit rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": false})
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		ok, err := client.Authenticate(context.Background(), "wrong")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if ok {
			t.Error("expected rejection")
		}
	})

	t.Run("normalizes non-2xx to service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		_, err := client.Authenticate(context.Background(), "open-sesame")

		var unavailable *domain.ServiceUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected ServiceUnavailableError, got: %v", err)
		}
	})
}

func TestListProducts(t *testing.T) {
	t.Run("decodes products and converts prices to cents", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/products" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			_, _ = w.Write([]byte(`[
				{"id":"p1","name":"Kettle","price":29.99,"imageUrl":"/img/kettle.png","description":"Stovetop kettle","stock":4},
				{"id":"p2","name":"Mug","price":5.00,"imageUrl":"/img/mug.png","description":"Ceramic mug","stock":12}
			]`))
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		products, err := client.ListProducts(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
		if products[0].PriceCents != 2999 {
			t.Errorf("expected 2999 cents, got %d", products[0].PriceCents)
		}
		if products[1].PriceCents != 500 {
			t.Errorf("expected 500 cents, got %d", products[1].PriceCents)
		}
		if products[0].Stock != 4 {
			t.Errorf("expected stock 4, got %d", products[0].Stock)
		}
	})

	t.Run("normalizes malformed bodies to service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		_, err := client.ListProducts(context.Background())

		var unavailable *domain.ServiceUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected ServiceUnavailableError, got: %v", err)
		}
	})
}

func TestSubmit(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	req := domain.NewOrderRequest([]domain.CartLine{
		{ProductID: "p1", Name: "Kettle", PriceCents: 1000, Quantity: 2},
		{ProductID: "p2", Name: "Mug", PriceCents: 500, Quantity: 1},
	}, "1 Main St", now)

	t.Run("serializes the request with decimal amounts", func(t *testing.T) {
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/order" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "orderId": "ORD123"})
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		result, err := client.Submit(context.Background(), req)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !result.Success || result.OrderID != "ORD123" {
			t.Errorf("unexpected result: %+v", result)
		}

		if got := received["totalAmount"].(float64); got != 25.00 {
			t.Errorf("expected totalAmount 25.00, got %v", got)
		}
		if got := received["deliveryAddress"].(string); got != "1 Main St" {
			t.Errorf("expected delivery address, got %q", got)
		}
		if got := received["orderDate"].(string); got != "2026-03-14T09:30:00Z" {
			t.Errorf("expected RFC3339 order date, got %q", got)
		}
		items := received["items"].([]any)
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		first := items[0].(map[string]any)
		if first["price"].(float64) != 10.00 {
			t.Errorf("expected item price 10.00, got %v", first["price"])
		}
	})

	t.Run("passes out of stock items through", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":         false,
				"message":         "insufficient stock",
				"outOfStockItems": []string{"p2"},
			})
		}))
		defer server.Close()

		client := rest.NewClient(server.URL, server.Client())

		result, err := client.Submit(context.Background(), req)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Success {
			t.Error("expected failure result")
		}
		if len(result.OutOfStockItems) != 1 || result.OutOfStockItems[0] != "p2" {
			t.Errorf("expected [p2], got %v", result.OutOfStockItems)
		}
	})

	t.Run("normalizes transport failure to service unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := rest.NewClient(server.URL, nil)

		_, err := client.Submit(context.Background(), req)

		var unavailable *domain.ServiceUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected ServiceUnavailableError, got: %v", err)
		}
	})
}

var _ ports.AuthService = (*rest.Client)(nil)
var _ ports.CatalogService = (*rest.Client)(nil)
var _ ports.OrderService = (*rest.Client)(nil)
