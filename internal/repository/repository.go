// Package repository mirrors the store's orders and wishlist to durable
// key-value storage. Each collection lives under one key as a JSON array
// written in full on every change.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

const (
	KeyOrders   = "shopperz_orders"
	KeyWishlist = "shopperz_wishlist"
)

// ErrNotFound is returned by KeyValue.Get when the key was never written.
var ErrNotFound = errors.New("key not found")

// KeyValue is the durable storage backend.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type OrderRepository interface {
	// Load returns the saved orders, or nil when nothing was saved yet.
	Load(ctx context.Context) ([]domain.Order, error)
	SaveAll(ctx context.Context, orders []domain.Order) error
}

type WishlistRepository interface {
	// Load returns the saved product ids, or nil when nothing was saved yet.
	Load(ctx context.Context) ([]string, error)
	SaveAll(ctx context.Context, ids []string) error
}

type jsonArray[T any] struct {
	kv  KeyValue
	key string
}

func (r jsonArray[T]) Load(ctx context.Context) ([]T, error) {
	b, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.key, err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return out, nil
}

func (r jsonArray[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.kv.Set(ctx, r.key, b); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

func NewOrderRepository(kv KeyValue) OrderRepository {
	return jsonArray[domain.Order]{kv: kv, key: KeyOrders}
}

func NewWishlistRepository(kv KeyValue) WishlistRepository {
	return jsonArray[string]{kv: kv, key: KeyWishlist}
}
