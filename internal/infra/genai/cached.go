package genai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedGenerator remembers generated descriptions in redis so repeated
// "Generate" clicks for the same draft do not hit the model again. Chat is
// never cached. Fallback strings are not stored.
type CachedGenerator struct {
	next TextGenerator
	rdb  cacheClient
	ttl  time.Duration
	log  *logrus.Logger
}

var _ TextGenerator = (*CachedGenerator)(nil)

func NewCachedGenerator(next TextGenerator, rdb cacheClient, ttl time.Duration, log *logrus.Logger) *CachedGenerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedGenerator{next: next, rdb: rdb, ttl: ttl, log: log}
}

func descriptionKey(name, category, features string) string {
	sum := sha256.Sum256([]byte(name + "\x00" + category + "\x00" + features))
	return "genai:desc:" + hex.EncodeToString(sum[:])
}

func (g *CachedGenerator) GenerateDescription(ctx context.Context, name, category, features string) string {
	key := descriptionKey(name, category, features)

	cached, err := g.rdb.Get(ctx, key).Result()
	if err == nil && cached != "" {
		metrics.RecordCollaborator("describe", "cached")
		return cached
	}
	if err != nil && err != redis.Nil {
		g.log.WithError(err).Debug("description cache read failed")
	}

	text := g.next.GenerateDescription(ctx, name, category, features)
	if IsFallback(text) {
		return text
	}
	if err := g.rdb.Set(ctx, key, text, g.ttl).Err(); err != nil {
		g.log.WithError(err).Debug("description cache write failed")
	}
	return text
}

func (g *CachedGenerator) Chat(ctx context.Context, history []domain.ChatMessage, message string, catalog []domain.Product) string {
	return g.next.Chat(ctx, history, message, catalog)
}
