package domain

import "time"

type ViewMode string

const (
	ViewShop     ViewMode = "shop"
	ViewAdmin    ViewMode = "admin"
	ViewCart     ViewMode = "cart"
	ViewOrders   ViewMode = "orders"
	ViewWishlist ViewMode = "wishlist"
)

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role" binding:"required,oneof=user model"`
	Text      string    `json:"text" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}
