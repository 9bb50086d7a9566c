// Package storefront composes the catalog, cart, navigator, filter inputs
// and shopping assistant into one user session. Every user event runs to
// completion under the session lock before the next one starts.
package storefront

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront-api/internal/assistant"
	"storefront-api/internal/cart"
	"storefront-api/internal/catalog"
	"storefront-api/internal/navigator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when an event names an id the catalog or cart does not hold
var ErrItemNotFound = errors.New("item not found")

// DefaultEmptyStateMessage is shown when the filter matches nothing
const DefaultEmptyStateMessage = "No products found matching your criteria."

// Config holds the collaborators of a Session
type Config struct {
	Catalog           *catalog.Store
	Assistant         *assistant.Manager
	EmptyStateMessage string
}

// BrowseView is the home grid as currently filtered
type BrowseView struct {
	Heading      string           `json:"heading"`
	Query        string           `json:"query"`
	Category     catalog.Selector `json:"category"`
	Items        []catalog.Item   `json:"items"`
	Count        int              `json:"count"`
	Empty        bool             `json:"empty"`
	EmptyMessage string           `json:"emptyMessage,omitempty"`
}

// CartView is the drawer contents with derived totals
type CartView struct {
	Lines        []cart.Line     `json:"lines"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	DisplayTotal string          `json:"displayTotal"`
	Open         bool            `json:"open"`
}

// Order is the receipt of a placed order. Nothing is persisted or charged.
type Order struct {
	ID           string          `json:"orderId"`
	Lines        []cart.Line     `json:"lines"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	DisplayTotal string          `json:"displayTotal"`
	PlacedAt     time.Time       `json:"placedAt"`
}

// Session is one shopper's storefront state
type Session struct {
	mu sync.Mutex

	catalog   *catalog.Store
	cart      *cart.Cart
	navigator *navigator.Navigator
	assistant *assistant.Manager
	ids       *catalog.IDSource

	filter       catalog.Filter
	drawerOpen   bool
	emptyMessage string
}

// NewSession creates a session on the home screen with an empty cart and
// the "All" category selected. A nil catalog is seeded with the demo items.
func NewSession(cfg Config) *Session {
	store := cfg.Catalog
	if store == nil {
		store = catalog.NewStore(catalog.SeedItems())
	}

	emptyMessage := cfg.EmptyStateMessage
	if emptyMessage == "" {
		emptyMessage = DefaultEmptyStateMessage
	}

	manager := cfg.Assistant
	if manager == nil {
		manager = assistant.NewManager(assistant.ManagerConfig{Catalog: store})
	}

	slog.Info("Storefront session created", "catalog_items", store.Len())

	return &Session{
		catalog:      store,
		cart:         cart.New(),
		navigator:    navigator.New(),
		assistant:    manager,
		ids:          catalog.NewIDSource(store.MaxID()),
		filter:       catalog.Filter{Category: catalog.SelectAll},
		emptyMessage: emptyMessage,
	}
}

// Assistant returns the chat manager. It locks independently of the session.
func (s *Session) Assistant() *assistant.Manager {
	return s.assistant
}

// Browse returns the filtered catalog for the current query and category
func (s *Session) Browse() BrowseView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browseLocked()
}

func (s *Session) browseLocked() BrowseView {
	result := s.filter.Apply(s.catalog.All())

	view := BrowseView{
		Heading:  s.filter.Category.Heading(),
		Query:    s.filter.Query,
		Category: s.filter.Category,
		Items:    result.Items,
		Count:    len(result.Items),
		Empty:    result.Empty(),
	}
	if view.Empty {
		view.EmptyMessage = s.emptyMessage
	}
	return view
}

// SetQuery replaces the search text
func (s *Session) SetQuery(query string) BrowseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter.Query = query
	slog.Debug("Search query changed", "query", query)
	return s.browseLocked()
}

// SetCategory replaces the category selector
func (s *Session) SetCategory(selector catalog.Selector) BrowseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter.Category = selector
	slog.Debug("Category selector changed", "category", selector)
	return s.browseLocked()
}

// ResetFilters is "View All": clears the query and selects every category
func (s *Session) ResetFilters() BrowseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = catalog.Filter{Category: catalog.SelectAll}
	slog.Debug("Filters reset")
	return s.browseLocked()
}

// Item looks a catalog item up by id
func (s *Session) Item(id int64) (catalog.Item, error) {
	item, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Item{}, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return item, nil
}

// CatalogSize returns the number of items regardless of filters
func (s *Session) CatalogSize() int {
	return s.catalog.Len()
}

// View returns the navigation state
func (s *Session) View() navigator.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigator.State()
}

// ShowProduct opens the details screen for a catalog item
func (s *Session) ShowProduct(id int64) (navigator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.catalog.Get(id)
	if !ok {
		return s.navigator.State(), fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if err := s.navigator.ShowProduct(item); err != nil {
		return s.navigator.State(), err
	}
	return s.navigator.State(), nil
}

// GoHome returns to the catalog grid
func (s *Session) GoHome() navigator.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.navigator.Home()
	return s.navigator.State()
}

// OpenSell shows the seller form
func (s *Session) OpenSell() navigator.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.navigator.Sell()
	return s.navigator.State()
}

// AddToCart merges the item into the cart and opens the drawer
func (s *Session) AddToCart(id int64) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.catalog.Get(id)
	if !ok {
		return s.cartViewLocked(), fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	s.cart.Add(item)
	s.drawerOpen = true
	return s.cartViewLocked(), nil
}

// UpdateQuantity applies delta to a cart line, clamped at 1. An id that is
// not in the cart leaves it unchanged and returns ErrItemNotFound.
func (s *Session) UpdateQuantity(id int64, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cart.UpdateQuantity(id, delta); !ok {
		return s.cartViewLocked(), fmt.Errorf("%w in cart: %d", ErrItemNotFound, id)
	}
	return s.cartViewLocked(), nil
}

// RemoveFromCart deletes a cart line. Same not-found contract as UpdateQuantity.
func (s *Session) RemoveFromCart(id int64) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(id) {
		return s.cartViewLocked(), fmt.Errorf("%w in cart: %d", ErrItemNotFound, id)
	}
	return s.cartViewLocked(), nil
}

// OpenCart shows the drawer
func (s *Session) OpenCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = true
	return s.cartViewLocked()
}

// CloseCart hides the drawer
func (s *Session) CloseCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = false
	return s.cartViewLocked()
}

// CartView returns the cart with derived count and total
func (s *Session) CartView() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *Session) cartViewLocked() CartView {
	total := s.cart.Total()
	return CartView{
		Lines:        s.cart.Lines(),
		Count:        s.cart.Count(),
		Total:        total,
		DisplayTotal: catalog.FormatPrice(total),
		Open:         s.drawerOpen,
	}
}

// Checkout closes the drawer and shows the checkout screen. An empty cart
// is allowed.
func (s *Session) Checkout() navigator.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawerOpen = false
	s.navigator.Checkout()
	return s.navigator.State()
}

// PlaceOrder clears the cart and shows the confirmation screen. Outside
// checkout it fails with navigator.ErrInvalidTransition and the cart is
// left as it was.
func (s *Session) PlaceOrder() (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if screen := s.navigator.Screen(); screen != navigator.ScreenCheckout {
		slog.Warn("Order rejected outside checkout", "screen", screen)
		return Order{}, fmt.Errorf("%w: %s -> %s", navigator.ErrInvalidTransition, screen, navigator.ScreenOrderSuccess)
	}

	total := s.cart.Total()
	order := Order{
		ID:           uuid.NewString(),
		Lines:        s.cart.Lines(),
		Count:        s.cart.Count(),
		Total:        total,
		DisplayTotal: catalog.FormatPrice(total),
		PlacedAt:     time.Now().UTC(),
	}

	if err := s.navigator.CompleteOrder(); err != nil {
		return Order{}, err
	}
	s.cart.Clear()

	slog.Info("Order placed",
		"order_id", order.ID,
		"units", order.Count,
		"total", order.DisplayTotal)

	return order, nil
}

// SubmitItem validates a seller submission, places the new item first in
// the catalog, returns home and selects every category
func (s *Session) SubmitItem(sub catalog.Submission) (catalog.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := sub.Validate()
	if err != nil {
		slog.Warn("Item submission rejected", "error", err)
		return catalog.Item{}, err
	}
	item.ID = s.ids.Next()

	s.catalog.Append(item)
	s.navigator.Home()
	s.filter.Category = catalog.SelectAll

	return item, nil
}
