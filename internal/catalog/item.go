package catalog

import (
	"github.com/shopspring/decimal"
)

// Rating summarises customer reviews
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Item is a sellable catalog entry. Items are never mutated after creation.
type Item struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// FormatPrice renders a monetary value with exactly two decimals
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
