package store

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// SeedProducts is the catalog a fresh storefront opens with.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Quantum X Wireless Headphones",
			Price:       decimal.RequireFromString("299.99"),
			Description: "Experience pure sound with the Quantum X. Featuring adaptive noise cancellation and 40-hour battery life.",
			Category:    string(domain.CategoryElectronics),
			Image:       "https://picsum.photos/400/400?random=1",
			Rating:      4.8,
			Reviews:     124,
		},
		{
			ID:          "2",
			Name:        "Urban Drift Smartwatch",
			Price:       decimal.RequireFromString("199.50"),
			Description: "Track your life in style. The Urban Drift monitors health, notifications, and sleep patterns with a sleek design.",
			Category:    string(domain.CategoryElectronics),
			Image:       "https://picsum.photos/400/400?random=2",
			Rating:      4.5,
			Reviews:     89,
		},
		{
			ID:          "3",
			Name:        "NeoComfort Running Shoes",
			Price:       decimal.RequireFromString("120.00"),
			Description: "Run on clouds. Engineered mesh upper and foam sole provide unparalleled comfort for long distances.",
			Category:    string(domain.CategoryFashion),
			Image:       "https://picsum.photos/400/400?random=3",
			Rating:      4.7,
			Reviews:     210,
		},
		{
			ID:          "4",
			Name:        "Minimalist Oak Desk",
			Price:       decimal.RequireFromString("450.00"),
			Description: "A sturdy, beautiful workspace. Solid oak construction with a matte finish perfectly fits modern home offices.",
			Category:    string(domain.CategoryHome),
			Image:       "https://picsum.photos/400/400?random=4",
			Rating:      4.9,
			Reviews:     56,
		},
		{
			ID:          "5",
			Name:        "Pro-Grip Yoga Mat",
			Price:       decimal.RequireFromString("45.00"),
			Description: "Stay grounded. Non-slip surface ensures stability during the most challenging poses.",
			Category:    string(domain.CategorySports),
			Image:       "https://picsum.photos/400/400?random=5",
			Rating:      4.6,
			Reviews:     340,
		},
	}
}
