package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func TestFilterProducts(t *testing.T) {
	products := []domain.Product{
		CreateMockProduct("1", "Quantum X Wireless Headphones", "299.99", "Electronics"),
		CreateMockProduct("2", "Urban Drift Smartwatch", "199.50", "Electronics"),
		CreateMockProduct("3", "NeoComfort Running Shoes", "120.00", "Fashion"),
	}

	tests := []struct {
		name     string
		category string
		query    string
		expected []string
	}{
		{name: "all", category: AllFilter, expected: []string{"1", "2", "3"}},
		{name: "empty category means all", expected: []string{"1", "2", "3"}},
		{name: "by category", category: "Electronics", expected: []string{"1", "2"}},
		{name: "case insensitive search", category: AllFilter, query: "  SMART ", expected: []string{"2"}},
		{name: "category and search", category: "Fashion", query: "watch", expected: []string{}},
		{name: "unknown category", category: "Toys", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.category, tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []domain.Order{
		CreateMockOrder("A", domain.StatusProcessing),
		CreateMockOrder("B", domain.StatusShipped),
		CreateMockOrder("C", domain.StatusProcessing),
	}

	assert.Len(t, FilterOrders(orders, AllFilter), 3)
	assert.Len(t, FilterOrders(orders, ""), 3)
	assert.Len(t, FilterOrders(orders, string(domain.StatusProcessing)), 2)
	assert.Empty(t, FilterOrders(orders, string(domain.StatusDelivered)))
}

func TestCartCount(t *testing.T) {
	cart := []domain.CartItem{
		{Product: CreateMockProduct("a", "A", "1", "Toys"), Quantity: 3},
		{Product: CreateMockProduct("b", "B", "1", "Toys"), Quantity: 1},
	}
	assert.Equal(t, 4, CartCount(cart))
	assert.Zero(t, CartCount(nil))
}
