package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/repository"
)

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func TestKV_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*MockRedisClient)
		expectedValue []byte
		expectedError error
	}{
		{
			name: "value present",
			setupMocks: func(m *MockRedisClient) {
				m.On("Get", mock.Anything, "store:shopperz_orders").Return(redis.NewStringResult(`[]`, nil))
			},
			expectedValue: []byte(`[]`),
		},
		{
			name: "missing key maps to ErrNotFound",
			setupMocks: func(m *MockRedisClient) {
				m.On("Get", mock.Anything, "store:shopperz_orders").Return(redis.NewStringResult("", redis.Nil))
			},
			expectedError: repository.ErrNotFound,
		},
		{
			name: "connection error",
			setupMocks: func(m *MockRedisClient) {
				m.On("Get", mock.Anything, "store:shopperz_orders").Return(redis.NewStringResult("", errors.New("dial tcp: refused")))
			},
			expectedError: errors.New("dial tcp: refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockRedisClient)
			tt.setupMocks(client)

			got, err := NewKV(client, "store:").Get(context.Background(), repository.KeyOrders)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if tt.expectedError == repository.ErrNotFound {
					assert.ErrorIs(t, err, repository.ErrNotFound)
				} else {
					assert.Contains(t, err.Error(), tt.expectedError.Error())
				}
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, got)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestKV_SetNeverExpires(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Set", mock.Anything, "store:shopperz_wishlist", []byte(`["1"]`), time.Duration(0)).
		Return(redis.NewStatusResult("OK", nil))

	err := NewKV(client, "store:").Set(context.Background(), repository.KeyWishlist, []byte(`["1"]`))

	assert.NoError(t, err)
	client.AssertExpectations(t)
}
