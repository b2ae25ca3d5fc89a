// Package cart maintains the client's view of the server-side cart. The
// server copy is authoritative: every mutation writes through the backend
// and then re-fetches the whole cart, so local state is never an
// unconfirmed guess. Mutations serialize on a per-store queue, so two
// rapid operations can never interleave one's write with the other's
// reload.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopfront/shopfront/pkg/models"
)

// API is the slice of the backend client the cart store needs.
type API interface {
	Cart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}

// Store is the cart store.
type Store struct {
	// opMu serializes complete mutate-then-reload sequences. It is held
	// across network calls, so readers use the separate state lock.
	opMu sync.Mutex

	mu    sync.RWMutex
	items []models.CartItem
	subs  []func()

	api    API
	logger *slog.Logger
}

// NewStore creates an empty cart store backed by the given API.
func NewStore(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{api: api, logger: logger}
}

// Reload fetches the server cart and replaces local state wholesale.
// Fetch failures are swallowed: the last-known-good items stay in place
// and a transient refresh problem never interrupts navigation. Lines
// whose product no longer resolves, or whose quantity is not positive,
// are dropped during normalization.
func (s *Store) Reload(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.reload(ctx)
	return nil
}

// reload is the internal reload used while opMu is already held.
func (s *Store) reload(ctx context.Context) {
	serverItems, err := s.api.Cart(ctx)
	if err != nil {
		s.logger.Debug("cart reload failed, keeping last known state", "error", err)
		return
	}

	normalized := make([]models.CartItem, 0, len(serverItems))
	for _, item := range serverItems {
		if item.Product == nil || item.Quantity < 1 {
			continue
		}
		normalized = append(normalized, item)
	}

	s.mu.Lock()
	s.items = normalized
	s.mu.Unlock()
	s.notify()
}

// AddItem adds quantity units of the product to the cart, then reloads so
// local state reflects the server's merge (the backend combines lines by
// product id; the client never sums locally). Quantities below one are
// coerced to one.
func (s *Store) AddItem(ctx context.Context, product *models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.api.AddToCart(ctx, product.ID, quantity); err != nil {
		return fmt.Errorf("cart: add item: %w", err)
	}
	s.reload(ctx)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or less is a removal, not an error: the backend never sees a
// non-positive quantity.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if quantity <= 0 {
		if err := s.api.RemoveFromCart(ctx, productID); err != nil {
			return fmt.Errorf("cart: remove item: %w", err)
		}
		s.reload(ctx)
		return nil
	}

	if err := s.api.UpdateCartItem(ctx, productID, quantity); err != nil {
		return fmt.Errorf("cart: update quantity: %w", err)
	}
	s.reload(ctx)
	return nil
}

// RemoveItem removes a line by product id, then reloads.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.api.RemoveFromCart(ctx, productID); err != nil {
		return fmt.Errorf("cart: remove item: %w", err)
	}
	s.reload(ctx)
	return nil
}

// Clear empties the cart. The resulting state is known, so local state is
// set directly instead of reloading.
func (s *Store) Clear(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.api.ClearCart(ctx); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount returns the sum of quantities across all lines. It is always
// computed from the items, never stored, so it cannot desynchronize.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the price-times-quantity sum across all lines.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Subscribe registers fn to run after every cart change. Callbacks run
// synchronously and must not call back into the store's mutators.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// notify runs the subscriber callbacks outside the state lock.
func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
