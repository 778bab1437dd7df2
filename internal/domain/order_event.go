package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced          = "order.placed"
	EventOrderStatusChanged   = "order.status_changed"
	EventOrderTrackingUpdated = "order.tracking_updated"
)

type OrderEvent struct {
	OrderID     string          `json:"orderId"`
	Status      OrderStatus     `json:"status"`
	Total       decimal.Decimal `json:"total"`
	TrackingID  string          `json:"trackingId,omitempty"`
	TrackingURL string          `json:"trackingUrl,omitempty"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

func NewOrderEvent(o Order, at time.Time) OrderEvent {
	return OrderEvent{
		OrderID:     o.ID,
		Status:      o.Status,
		Total:       o.Total,
		TrackingID:  o.TrackingID,
		TrackingURL: o.TrackingURL,
		OccurredAt:  at,
	}
}
