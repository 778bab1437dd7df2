package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront/internal/repository"
)

// Client is the part of a redis client the KeyValue needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type kv struct {
	rdb    Client
	prefix string
}

// NewKV stores every key under prefix in the given redis client. Values never
// expire.
func NewKV(rdb Client, prefix string) repository.KeyValue {
	return &kv{rdb: rdb, prefix: prefix}
}

func (r *kv) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *kv) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}
