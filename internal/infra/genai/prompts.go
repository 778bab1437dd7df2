package genai

import (
	"fmt"
	"strings"

	"storefront/internal/domain"
)

func descriptionPrompt(name, category, features string) string {
	return fmt.Sprintf(`Write a compelling, marketing-focused product description for a product named %q in the category %q.
Key features to include: %s.
Keep it under 60 words. Tone: Professional yet exciting.`, name, category, features)
}

func catalogLines(catalog []domain.Product) string {
	var b strings.Builder
	for i, p := range catalog {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s ($%s): %s", p.Name, p.Price.StringFixed(2), p.Description)
	}
	return b.String()
}

func chatInstruction(catalog []domain.Product) string {
	return `You are "Xr Ai", a helpful shopping assistant for ShopperzStop.
Here is our current product catalog:
` + catalogLines(catalog) + `

Your goal is to help customers find products, compare them, and answer questions.
Be concise, friendly, and enthusiastic.
If a user asks about a product not in the catalog, politely say we don't carry it yet.
Always recommend specific products from the list when relevant.`
}
