package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category label is not part of the catalog taxonomy
var ErrUnknownCategory = errors.New("unknown category")

// Category is the closed set of labels an item can carry
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHome        Category = "Home"
	CategoryAccessories Category = "Accessories"
	CategoryFurniture   Category = "Furniture"
)

// DefaultCategory is used for submissions that do not pick one
const DefaultCategory = CategoryElectronics

var categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryHome,
	CategoryAccessories,
	CategoryFurniture,
}

// Categories returns every category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a label case-insensitively
func ParseCategory(label string) (Category, error) {
	trimmed := strings.TrimSpace(label)
	for _, c := range categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, label)
}

// Selector picks which categories the filter lets through
type Selector string

// SelectAll is the sentinel that matches every category
const SelectAll Selector = "All"

// Only returns a selector matching a single category
func Only(c Category) Selector {
	return Selector(c)
}

// ParseSelector accepts "All" (or an empty string) and any known category
func ParseSelector(label string) (Selector, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || strings.EqualFold(trimmed, string(SelectAll)) {
		return SelectAll, nil
	}
	c, err := ParseCategory(trimmed)
	if err != nil {
		return "", err
	}
	return Only(c), nil
}

// Matches reports whether an item category passes the selector
func (s Selector) Matches(c Category) bool {
	return s == SelectAll || Category(s) == c
}

// Heading is the section title shown above the results
func (s Selector) Heading() string {
	if s == SelectAll || s == "" {
		return "Recommended for you"
	}
	return string(s)
}
