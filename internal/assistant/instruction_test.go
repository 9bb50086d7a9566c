package assistant

import (
	"strings"
	"testing"

	"storefront-api/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCatalogLine(t *testing.T) {
	item := catalog.Item{
		ID:          42,
		Title:       "Desk Lamp",
		Price:       decimal.RequireFromString("19.5"),
		Category:    catalog.CategoryHome,
		Description: "Warm light.",
	}

	assert.Equal(t, "ID: 42, Name: Desk Lamp, Price: $19.50, Category: Home, Description: Warm light.", CatalogLine(item))
}

func TestBuildInstruction(t *testing.T) {
	items := catalog.SeedItems()
	instruction := BuildInstruction(DefaultPersona, items)

	assert.True(t, strings.HasPrefix(instruction, `You are "Sky", a helpful and enthusiastic AI shopping assistant for Skyline Shop.`))
	assert.Equal(t, len(items), strings.Count(instruction, "ID: "))
	assert.Contains(t, instruction, "1. Only recommend products from this catalog.")
	assert.Contains(t, instruction, "under 80 words")
	assert.True(t, strings.HasSuffix(instruction, "encourage them to add it to their cart."))
}

func TestBuildInstruction_EmptyCatalog(t *testing.T) {
	instruction := BuildInstruction(DefaultPersona, nil)

	assert.Contains(t, instruction, "Here is our current product catalog:\n\n\nRules:")
	assert.NotContains(t, instruction, "ID: ")
}
