package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home & Living"
	CategorySports      Category = "Sports"
	CategoryToys        Category = "Toys"
)

// DefaultCategories is the enumeration a fresh store starts with.
func DefaultCategories() []string {
	return []string{
		string(CategoryElectronics),
		string(CategoryFashion),
		string(CategoryHome),
		string(CategorySports),
		string(CategoryToys),
	}
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Rating      float64          `json:"rating"`
	Reviews     int              `json:"reviews"`
	IsOnSale    bool             `json:"isOnSale,omitempty"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
}

// EffectivePrice is the sale price when the product is flagged on sale and
// carries a non-zero sale price, otherwise the base price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.IsOnSale && p.SalePrice != nil && !p.SalePrice.IsZero() {
		return *p.SalePrice
	}
	return p.Price
}

// ProductDraft is the admin form input for creating or editing a product.
// Features only feeds the description generator and is never stored.
type ProductDraft struct {
	Name        string           `json:"name" binding:"required"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category" binding:"required"`
	Image       string           `json:"image"`
	Description string           `json:"description" binding:"required"`
	Features    string           `json:"features,omitempty"`
	IsOnSale    bool             `json:"isOnSale"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
}

// Apply copies the draft's editable fields onto p, keeping identity, rating
// and review count.
func (d ProductDraft) Apply(p Product) Product {
	p.Name = d.Name
	p.Price = d.Price
	p.Category = d.Category
	p.Image = d.Image
	p.Description = d.Description
	p.IsOnSale = d.IsOnSale
	p.SalePrice = d.SalePrice
	return p
}

// ValidationError reports the first draft field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the draft against the admin form rules. categories is the
// current category collection the draft's category must belong to.
func (d ProductDraft) Validate(categories []string) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if !d.Price.IsPositive() {
		return &ValidationError{Field: "price", Message: "price must be greater than zero"}
	}
	if !slices.Contains(categories, d.Category) {
		return &ValidationError{Field: "category", Message: "unknown category " + d.Category}
	}
	if d.IsOnSale {
		if d.SalePrice == nil || !d.SalePrice.IsPositive() {
			return &ValidationError{Field: "salePrice", Message: "sale price is required when on sale"}
		}
		if !d.SalePrice.LessThan(d.Price) {
			return &ValidationError{Field: "salePrice", Message: "sale price must be lower than price"}
		}
	}
	return nil
}
