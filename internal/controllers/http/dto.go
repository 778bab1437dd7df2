package http

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type AddCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type WishlistResponse struct {
	IDs      []string         `json:"ids"`
	Products []domain.Product `json:"products"`
}

type ToggleWishlistResponse struct {
	ProductID  string `json:"productId"`
	InWishlist bool   `json:"inWishlist"`
}

type ChatRequest struct {
	History []domain.ChatMessage `json:"history" binding:"omitempty,dive"`
	Message string               `json:"message" binding:"required"`
}

type DescribeRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Features string `json:"features"`
}

type DescribeResponse struct {
	Description string `json:"description"`
	Fallback    bool   `json:"fallback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
