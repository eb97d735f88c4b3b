package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dejobratic/shoplite/internal/shop/app/commands"
	"github.com/dejobratic/shoplite/internal/shop/app/queries"
	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/metrics"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

// Service owns the session state: cart, order ledger, session flag, and
// theme preference. Every mutation happens under the service's lock and is
// written through the state store before the call returns, so the persisted
// blob always matches memory. The checkout commit is atomic from the
// caller's view: either the ledger gains an order and the cart is cleared,
// or the prior state stands.
type Service struct {
	mu       sync.Mutex
	loggedIn bool
	cart     *domain.Cart
	orders   []domain.Order
	theme    string
	catalog  []domain.Product

	store     ports.StateStore
	events    ports.EventBus
	idemStore ports.IdempotencyStore
	checkout  commands.CheckoutHandler
	login     commands.LoginHandler
	catalogQ  *queries.GetCatalogQueryHandler
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService wires required dependencies.
func NewService(
	store ports.StateStore,
	auth ports.AuthService,
	catalog ports.CatalogService,
	orders ports.OrderService,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreCheckout := commands.NewPlaceOrderCommandHandler(orders)
	observableCheckout := commands.NewObservableCheckoutHandler(coreCheckout, logger, metrics)

	return &Service{
		cart:      domain.NewCart(),
		store:     store,
		events:    events,
		idemStore: idem,
		checkout:  observableCheckout,
		login:     commands.NewLoginCommandHandler(auth),
		catalogQ:  queries.NewGetCatalogQueryHandler(catalog, logger),
		logger:    logger,
		metrics:   metrics,
	}
}

// CartView is a read snapshot of the cart with its recomputed total.
type CartView struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalCents int64             `json:"total_cents"`
}

// Restore loads previously persisted state, if any. Called once at startup.
func (s *Service) Restore(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load persisted state: %w", err)
	}
	if state == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = state.LoggedIn
	s.cart = domain.RestoreCart(state.CartLines)
	s.orders = append([]domain.Order(nil), state.Orders...)
	s.theme = state.Theme
	return nil
}

// Products returns the session's catalog, fetching it on first use. The
// fallback policy inside the query handler guarantees a non-empty result.
func (s *Service) Products(ctx context.Context) []domain.Product {
	s.mu.Lock()
	cached := s.catalog
	s.mu.Unlock()
	if cached != nil {
		return cached
	}

	products := s.catalogQ.Handle(ctx)

	s.mu.Lock()
	s.catalog = products
	s.mu.Unlock()
	return products
}

// AddItem adds one unit of the product to the cart, merging into an existing
// line when present, and persists the new state.
func (s *Service) AddItem(ctx context.Context, product domain.Product) (CartView, error) {
	if err := product.Validate(); err != nil {
		return CartView{}, &domain.ValidationError{Field: "product", Reason: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(product)
	if err := s.persistLocked(ctx); err != nil {
		return CartView{}, err
	}
	return s.cartViewLocked(), nil
}

// SetQuantity replaces a line's quantity; a quantity below one removes the
// line. Absent ids are a no-op.
func (s *Service) SetQuantity(ctx context.Context, productID string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, quantity)
	if err := s.persistLocked(ctx); err != nil {
		return CartView{}, err
	}
	return s.cartViewLocked(), nil
}

// RemoveItem deletes a cart line if present.
func (s *Service) RemoveItem(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	if err := s.persistLocked(ctx); err != nil {
		return CartView{}, err
	}
	return s.cartViewLocked(), nil
}

// Cart returns the current cart snapshot.
func (s *Service) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

// Checkout runs the full flow: snapshot the cart, submit it, and on success
// append the order to the ledger and clear the cart in one commit. On any
// failure the cart and ledger are untouched.
func (s *Service) Checkout(ctx context.Context, deliveryAddress string) (*domain.Order, error) {
	s.mu.Lock()
	lines := s.cart.Lines()
	s.mu.Unlock()

	order, err := s.checkout.Handle(ctx, commands.PlaceOrderCommand{
		Lines:           lines,
		DeliveryAddress: deliveryAddress,
	})
	if err != nil {
		if pubErr := s.events.PublishCheckoutFailed(ctx, err.Error()); pubErr != nil {
			s.logger.WarnContext(ctx, "failed to publish checkout event", "error", pubErr)
		}
		return nil, err
	}

	s.mu.Lock()
	s.orders = append(s.orders, *order)
	s.cart.Clear()
	if err := s.persistLocked(ctx); err != nil {
		// Roll back so the commit stays all-or-nothing.
		s.orders = s.orders[:len(s.orders)-1]
		s.cart = domain.RestoreCart(lines)
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	if pubErr := s.events.PublishOrderPlaced(ctx, order.ID); pubErr != nil {
		s.logger.WarnContext(ctx, "order placed but event publish failed",
			"order_id", order.ID,
			"error", pubErr,
		)
	}

	return order, nil
}

// Login delegates the passkey check and flips the session to logged-in on
// success.
func (s *Service) Login(ctx context.Context, passkey string) error {
	err := s.login.Handle(ctx, commands.LoginCommand{Passkey: passkey})
	s.metrics.RecordLoginAttempt(ctx, err == nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	return s.persistLocked(ctx)
}

// Logout flips the session to logged-out and atomically clears the cart,
// the ledger, the theme preference, and all persisted copies.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.cart.Clear()
	s.orders = nil
	s.theme = ""
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted state: %w", err)
	}
	return nil
}

// Reset is the full escape hatch: logout plus re-initialization of the
// catalog cache. The confirmation gate lives at the boundary, not here.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.Logout(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = nil
	s.mu.Unlock()

	if pubErr := s.events.PublishSessionReset(ctx); pubErr != nil {
		s.logger.WarnContext(ctx, "failed to publish reset event", "error", pubErr)
	}
	return nil
}

// Orders returns the ledger in placement order.
func (s *Service) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Session reports the current session state.
func (s *Service) Session() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loggedIn {
		return domain.SessionLoggedIn
	}
	return domain.SessionLoggedOut
}

// SetTheme stores the theme preference.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return s.persistLocked(ctx)
}

// Theme returns the stored theme preference.
func (s *Service) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SaveIdempotentResponse writes checkout response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored checkout response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}

func (s *Service) cartViewLocked() CartView {
	return CartView{
		Lines:      s.cart.Lines(),
		TotalCents: s.cart.TotalCents(),
	}
}

func (s *Service) persistLocked(ctx context.Context) error {
	state := domain.State{
		LoggedIn:  s.loggedIn,
		CartLines: s.cart.Lines(),
		Orders:    append([]domain.Order(nil), s.orders...),
		Theme:     s.theme,
	}
	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}
