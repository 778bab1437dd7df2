package services

import (
	"strings"

	"storefront/internal/domain"
)

// AllFilter matches every category or status.
const AllFilter = "All"

// FilterProducts keeps products in category (AllFilter or empty for any)
// whose name contains query, ignoring case.
func FilterProducts(products []domain.Product, category, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllFilter && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func FilterOrders(orders []domain.Order, status string) []domain.Order {
	if status == "" || status == AllFilter {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

// CartCount is the number of units in the cart, not the number of lines.
func CartCount(cart []domain.CartItem) int {
	n := 0
	for _, it := range cart {
		n += it.Quantity
	}
	return n
}
