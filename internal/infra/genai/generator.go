// Package genai is the text generation collaborator used for product
// descriptions and the shopping assistant. Implementations never return an
// error: every failure degrades to one of the fallback strings below.
package genai

import (
	"context"

	"storefront/internal/domain"
)

const (
	DescriptionMissingKey = "API Key missing. Please configure your environment."
	DescriptionEmpty      = "Could not generate description."
	DescriptionFailed     = "Error generating description. Please try again."

	ChatMissingKey = "I'm sorry, I can't chat right now (API Key missing)."
	ChatEmpty      = "I didn't catch that."
	ChatFailed     = "I'm having trouble connecting to my brain right now. Try again later!"
)

type TextGenerator interface {
	GenerateDescription(ctx context.Context, name, category, features string) string
	Chat(ctx context.Context, history []domain.ChatMessage, message string, catalog []domain.Product) string
}

// IsFallback reports whether s is one of the degraded responses rather than
// generated text.
func IsFallback(s string) bool {
	switch s {
	case DescriptionMissingKey, DescriptionEmpty, DescriptionFailed,
		ChatMissingKey, ChatEmpty, ChatFailed:
		return true
	}
	return false
}

// Stub answers from fixed functions. A nil function yields the matching
// "empty" fallback.
type Stub struct {
	Describe func(name, category, features string) string
	Reply    func(history []domain.ChatMessage, message string, catalog []domain.Product) string
}

var _ TextGenerator = Stub{}

func (s Stub) GenerateDescription(_ context.Context, name, category, features string) string {
	if s.Describe == nil {
		return DescriptionEmpty
	}
	return s.Describe(name, category, features)
}

func (s Stub) Chat(_ context.Context, history []domain.ChatMessage, message string, catalog []domain.Product) string {
	if s.Reply == nil {
		return ChatEmpty
	}
	return s.Reply(history, message, catalog)
}
