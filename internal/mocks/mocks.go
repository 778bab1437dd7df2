package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
	"storefront/internal/infra/genai"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
)

var (
	_ repository.OrderRepository    = (*MockOrderRepository)(nil)
	_ repository.WishlistRepository = (*MockWishlistRepository)(nil)
	_ rabbit.PublisherInterface     = (*MockPublisher)(nil)
	_ genai.TextGenerator           = (*MockTextGenerator)(nil)
)

type MockOrderRepository struct {
	mock.Mock
}

type MockWishlistRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message any) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockOrderRepository) Load(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveAll(ctx context.Context, orders []domain.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockWishlistRepository) Load(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWishlistRepository) SaveAll(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockTextGenerator) GenerateDescription(ctx context.Context, name, category, features string) string {
	args := m.Called(ctx, name, category, features)
	return args.String(0)
}

func (m *MockTextGenerator) Chat(ctx context.Context, history []domain.ChatMessage, message string, catalog []domain.Product) string {
	args := m.Called(ctx, history, message, catalog)
	return args.String(0)
}
