package assistant

import (
	"fmt"
	"strings"

	"storefront-api/internal/catalog"
)

// Persona names the shop and its assistant in the system instruction
type Persona struct {
	StoreName     string
	AssistantName string
}

// DefaultPersona matches the demo storefront branding
var DefaultPersona = Persona{StoreName: "Skyline Shop", AssistantName: "Sky"}

// Greeting is the first assistant message of a transcript
func (p Persona) Greeting() string {
	return fmt.Sprintf("Hi! I'm your %s shopping assistant 🤖. What are you looking for today?", p.shortName())
}

func (p Persona) shortName() string {
	name := strings.TrimSpace(strings.TrimSuffix(p.StoreName, "Shop"))
	if name == "" {
		return p.StoreName
	}
	return name
}

// CatalogLine renders one item the way the assistant sees it
func CatalogLine(item catalog.Item) string {
	return fmt.Sprintf("ID: %d, Name: %s, Price: %s, Category: %s, Description: %s",
		item.ID, item.Title, catalog.FormatPrice(item.Price), item.Category, item.Description)
}

// BuildInstruction serialises the catalog into the assistant's system instruction
func BuildInstruction(p Persona, items []catalog.Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, CatalogLine(item))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %q, a helpful and enthusiastic AI shopping assistant for %s.\n\n", p.AssistantName, p.StoreName)
	b.WriteString("Here is our current product catalog:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Only recommend products from this catalog.\n")
	b.WriteString("2. If a user asks for something we don't have, politely suggest a similar category if available, or state we don't carry it.\n")
	b.WriteString("3. Keep answers concise (under 80 words) unless detailed comparison is asked.\n")
	b.WriteString("4. Use emojis occasionally to be friendly.\n")
	b.WriteString("5. Format prices clearly (e.g., $199.99).\n\n")
	b.WriteString("Your goal is to help users find the perfect item and encourage them to add it to their cart.")
	return b.String()
}
