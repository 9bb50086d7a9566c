package navigator

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"storefront-api/internal/catalog"
)

// ErrInvalidTransition is returned when a screen change is not allowed from the current screen
var ErrInvalidTransition = errors.New("invalid screen transition")

// Screen names one storefront view
type Screen string

const (
	ScreenHome           Screen = "home"
	ScreenProductDetails Screen = "product_details"
	ScreenCheckout       Screen = "checkout"
	ScreenUploadProduct  Screen = "upload_product"
	ScreenOrderSuccess   Screen = "order_success"
)

// State is a snapshot of the navigator. Active is set only on the product details screen.
type State struct {
	Screen Screen        `json:"screen"`
	Active *catalog.Item `json:"active,omitempty"`
}

// Navigator tracks the current screen
type Navigator struct {
	mu     sync.RWMutex
	screen Screen
	active *catalog.Item
}

// New returns a navigator on the home screen
func New() *Navigator {
	return &Navigator{screen: ScreenHome}
}

// State returns the current screen and active item
func (n *Navigator) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()

	state := State{Screen: n.screen}
	if n.active != nil {
		active := *n.active
		state.Active = &active
	}
	return state
}

// Screen returns the current screen
func (n *Navigator) Screen() Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.screen
}

func (n *Navigator) moveLocked(to Screen, active *catalog.Item) {
	from := n.screen
	n.screen = to
	n.active = active
	slog.Info("Screen changed", "from", from, "to", to)
}

func transitionError(from, to Screen) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// ShowProduct opens the details screen for an item. Only allowed from home.
func (n *Navigator) ShowProduct(item catalog.Item) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.screen != ScreenHome {
		return transitionError(n.screen, ScreenProductDetails)
	}
	n.moveLocked(ScreenProductDetails, &item)
	return nil
}

// Home returns to the home screen from anywhere and clears the active item
func (n *Navigator) Home() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.moveLocked(ScreenHome, nil)
}

// Checkout enters the checkout screen. An empty cart is not a guard.
func (n *Navigator) Checkout() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.moveLocked(ScreenCheckout, nil)
}

// Sell enters the seller upload form
func (n *Navigator) Sell() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.moveLocked(ScreenUploadProduct, nil)
}

// CompleteOrder moves from checkout to the confirmation screen
func (n *Navigator) CompleteOrder() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.screen != ScreenCheckout {
		return transitionError(n.screen, ScreenOrderSuccess)
	}
	n.moveLocked(ScreenOrderSuccess, nil)
	return nil
}
