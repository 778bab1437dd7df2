package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusProcessing     OrderStatus = "Processing"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists the statuses an order can be moved to. Placed only
// ever appears as the first history entry.
var OrderStatuses = []OrderStatus{
	StatusProcessing,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	NotePlaced     = "Order placed successfully."
	NoteProcessing = "Payment confirmed. We are preparing your order."
	NoteGeneric    = "Status updated."
)

var statusNotes = map[OrderStatus]string{
	StatusShipped:        "Package has been shipped.",
	StatusOutForDelivery: "Your package is out for delivery.",
	StatusDelivered:      "Package delivered.",
	StatusCancelled:      "Order cancelled by customer.",
}

// NoteFor returns the canonical history note written when an order moves to s.
func NoteFor(s OrderStatus) string {
	if n, ok := statusNotes[s]; ok {
		return n
	}
	return NoteGeneric
}

type StatusEntry struct {
	Status OrderStatus `json:"status"`
	Date   time.Time   `json:"date"`
	Note   string      `json:"note,omitempty"`
}

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	Status        OrderStatus     `json:"status"`
	TrackingID    string          `json:"trackingId,omitempty"`
	TrackingURL   string          `json:"trackingUrl,omitempty"`
	StatusHistory []StatusEntry   `json:"statusHistory,omitempty"`
}

// Clone returns a copy whose item and history slices are not shared with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]CartItem(nil), o.Items...)
	c.StatusHistory = append([]StatusEntry(nil), o.StatusHistory...)
	return c
}

// TrackingDraft is the admin form input for an order's tracking details.
type TrackingDraft struct {
	TrackingID  string `json:"trackingId" binding:"required"`
	TrackingURL string `json:"trackingUrl,omitempty" binding:"omitempty,url"`
}
