package catalog

import (
	"log/slog"
	"sync"
)

// Store holds the catalog in display order: seed items in their original
// order, appended items in front of them, newest first.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

// NewStore creates a store seeded with the given items
func NewStore(seed []Item) *Store {
	items := make([]Item, len(seed))
	copy(items, seed)

	slog.Debug("Catalog store initialized", "items_count", len(items))

	return &Store{items: items}
}

// Append places an item at the front of the catalog
func (s *Store) Append(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]Item{item}, s.items...)

	slog.Info("Catalog item appended",
		"item_id", item.ID,
		"category", item.Category,
		"items_count", len(s.items))
}

// All returns a copy of every item in display order
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks an item up by id
func (s *Store) Get(id int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Len returns the number of items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// MaxID returns the largest id in the store, or zero when empty
func (s *Store) MaxID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max int64
	for _, item := range s.items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max
}
