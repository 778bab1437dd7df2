package services

import (
	"context"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
	"storefront/internal/store"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	kv := memory.NewKV()
	return store.New(context.Background(),
		repository.NewOrderRepository(kv),
		repository.NewWishlistRepository(kv),
		notify.NewChannel(quietLogger()),
		store.WithLogger(quietLogger()),
	)
}

// fakeCart records commits so tests can assert nothing was placed.
type fakeCart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	orders  []domain.Order
	cleared bool
}

func (f *fakeCart) Cart() []domain.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartItem(nil), f.items...)
}

func (f *fakeCart) PlaceOrder(build func(items []domain.CartItem, total decimal.Decimal) domain.Order) (domain.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return domain.Order{}, false
	}
	total := decimal.Zero
	for _, it := range f.items {
		total = total.Add(it.LineTotal())
	}
	o := build(append([]domain.CartItem(nil), f.items...), total)
	f.orders = append(f.orders, o)
	f.items = nil
	f.cleared = true
	return o, true
}

func TestCheckoutService_Submit(t *testing.T) {
	a := CreateMockProduct("a", "Alpha", "19.99", "Electronics")
	b := CreateMockProduct("b", "Beta", "5.50", "Sports")

	tests := []struct {
		name          string
		setupCart     func(*fakeCart)
		ctx           func() (context.Context, context.CancelFunc)
		delay         time.Duration
		expectedError error
		expectedTotal string
	}{
		{
			name: "places order after delay",
			setupCart: func(f *fakeCart) {
				f.items = []domain.CartItem{{Product: a, Quantity: 2}, {Product: b, Quantity: 1}}
			},
			ctx:           func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			delay:         10 * time.Millisecond,
			expectedTotal: "45.48",
		},
		{
			name:          "empty cart",
			setupCart:     func(f *fakeCart) {},
			ctx:           func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			delay:         10 * time.Millisecond,
			expectedError: ErrEmptyCart,
		},
		{
			name: "cancelled before delay completes",
			setupCart: func(f *fakeCart) {
				f.items = []domain.CartItem{{Product: a, Quantity: 1}}
			},
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 5*time.Millisecond)
			},
			delay:         time.Second,
			expectedError: ErrCheckoutCancelled,
		},
		{
			name: "already cancelled",
			setupCart: func(f *fakeCart) {
				f.items = []domain.CartItem{{Product: a, Quantity: 1}}
			},
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			delay:         time.Second,
			expectedError: ErrCheckoutCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &fakeCart{}
			tt.setupCart(cart)
			ctx, cancel := tt.ctx()
			defer cancel()

			svc := NewCheckoutService(cart, tt.delay, quietLogger())
			order, err := svc.Submit(ctx, CreateMockForm())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, cart.orders)
				assert.False(t, cart.cleared)
				return
			}

			require.NoError(t, err)
			require.Len(t, cart.orders, 1)
			assert.Equal(t, order.ID, cart.orders[0].ID)
			assert.True(t, cart.cleared)
			assert.True(t, decimal.RequireFromString(tt.expectedTotal).Equal(order.Total))
			assert.Equal(t, domain.StatusProcessing, order.Status)
			assert.Equal(t, TestCustomerName, order.CustomerName)
			assert.Equal(t, TestEmail, order.Email)
		})
	}
}

func TestCheckoutService_OrderShape(t *testing.T) {
	fixed := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	cart := &fakeCart{items: []domain.CartItem{{Product: CreateMockProduct("a", "Alpha", "10", "Toys"), Quantity: 1}}}

	svc := NewCheckoutService(cart, 0, quietLogger())
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return TestOrderToken }

	order, err := svc.Submit(context.Background(), CreateMockForm())
	require.NoError(t, err)

	assert.Equal(t, TestOrderToken, order.ID)
	assert.True(t, fixed.Equal(order.Date))
	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, domain.StatusEntry{Status: domain.StatusPlaced, Date: fixed, Note: domain.NotePlaced}, order.StatusHistory[0])
	assert.Equal(t, domain.StatusEntry{Status: domain.StatusProcessing, Date: fixed, Note: domain.NoteProcessing}, order.StatusHistory[1])
}

func TestCheckoutService_SnapshotSurvivesProductEdits(t *testing.T) {
	a := CreateMockProduct("a", "Alpha", "19.99", "Electronics")
	b := CreateMockProduct("b", "Beta", "5.50", "Sports")
	s := newTestStore(t)
	s.AddToCart(a)
	s.AddToCart(a)
	s.AddToCart(b)

	expected := decimal.RequireFromString("19.99").Mul(decimal.NewFromInt(2)).Add(decimal.RequireFromString("5.50"))
	assert.True(t, expected.Equal(s.TotalPrice()))

	svc := NewCheckoutService(s, time.Millisecond, quietLogger())
	order, err := svc.Submit(context.Background(), CreateMockForm())
	require.NoError(t, err)

	assert.True(t, expected.Equal(order.Total))
	assert.Len(t, order.Items, 2)
	assert.Empty(t, s.Cart())

	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Len(t, orders[0].StatusHistory, 2)
}

func TestNewOrderToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok := NewOrderToken()
		assert.Regexp(t, pattern, tok)
		seen[tok] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestCheckoutService_ConcurrentCartEdits(t *testing.T) {
	a := CreateMockProduct("a", "Alpha", "19.99", "Electronics")

	for round := 0; round < 100; round++ {
		s := newTestStore(t)
		s.AddToCart(a)

		svc := NewCheckoutService(s, 200*time.Microsecond, quietLogger())

		stop := make(chan struct{})
		added := make(chan int)
		go func() {
			n := 0
			for {
				select {
				case <-stop:
					added <- n
					return
				default:
					s.AddToCart(a)
					n++
				}
			}
		}()

		order, err := svc.Submit(context.Background(), CreateMockForm())
		close(stop)
		extra := <-added
		require.NoError(t, err)

		sum := decimal.Zero
		ordered := 0
		for _, it := range order.Items {
			sum = sum.Add(it.LineTotal())
			ordered += it.Quantity
		}
		assert.True(t, sum.Equal(order.Total), "round %d: total %s, items sum %s", round, order.Total, sum)

		left := CartCount(s.Cart())
		assert.Equal(t, 1+extra, ordered+left, "round %d: units lost between cart and order", round)
	}
}
