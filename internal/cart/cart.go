package cart

import (
	"log/slog"
	"math"
	"sync"

	"storefront-api/internal/catalog"

	"github.com/shopspring/decimal"
)

// Line is one catalog item held in the cart with its quantity
type Line struct {
	catalog.Item
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for the line
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per item id, in first-added order
type Cart struct {
	mu    sync.RWMutex
	lines []Line
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(id int64) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart, incrementing an existing line or
// creating one with quantity 1
func (c *Cart) Add(item catalog.Item) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity = applyDelta(c.lines[i].Quantity, 1)
		slog.Info("Cart line incremented", "item_id", item.ID, "quantity", c.lines[i].Quantity)
		return c.lines[i]
	}

	line := Line{Item: item, Quantity: 1}
	c.lines = append(c.lines, line)
	slog.Info("Cart line created", "item_id", item.ID, "lines_count", len(c.lines))
	return line
}

// UpdateQuantity applies delta to a line, never letting it drop below 1.
// A delta that would overflow saturates at math.MaxInt. It reports false
// when no line has the id.
func (c *Cart) UpdateQuantity(id int64, delta int) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		slog.Debug("Quantity update ignored, line not in cart", "item_id", id, "delta", delta)
		return Line{}, false
	}

	c.lines[i].Quantity = applyDelta(c.lines[i].Quantity, delta)
	quantity := c.lines[i].Quantity

	slog.Info("Cart line quantity updated", "item_id", id, "delta", delta, "quantity", quantity)
	return c.lines[i], true
}

func applyDelta(quantity, delta int) int {
	if delta > 0 && quantity > math.MaxInt-delta {
		return math.MaxInt
	}
	// quantity is at least 1, so a negative delta cannot underflow
	if quantity += delta; quantity < 1 {
		return 1
	}
	return quantity
}

// Remove deletes the line with the id, reporting whether one existed
func (c *Cart) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)

	slog.Info("Cart line removed", "item_id", id, "lines_count", len(c.lines))
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	slog.Info("Cart cleared")
}

// Lines returns a copy of every line
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for an id
func (c *Cart) Line(id int64) (Line, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Count returns the number of units across all lines, saturating at math.MaxInt
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, line := range c.lines {
		if count > math.MaxInt-line.Quantity {
			return math.MaxInt
		}
		count += line.Quantity
	}
	return count
}

// Total is recomputed from the lines on every call
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
