package domain

import "github.com/shopspring/decimal"

// CartItem is a snapshot of a product plus the quantity in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.EffectivePrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}
