package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

var (
	ErrCheckoutCancelled = errors.New("checkout cancelled before the order was placed")
	ErrEmptyCart         = errors.New("cart is empty")
)

const DefaultCheckoutDelay = 2500 * time.Millisecond

const orderTokenLen = 9

// CartStore is the part of the store the checkout flow needs. PlaceOrder
// must snapshot the cart, record the order and empty the cart atomically.
type CartStore interface {
	Cart() []domain.CartItem
	PlaceOrder(build func(items []domain.CartItem, total decimal.Decimal) domain.Order) (domain.Order, bool)
}

type CheckoutService struct {
	store CartStore
	delay time.Duration
	log   *logrus.Logger
	now   func() time.Time
	newID func() string
}

func NewCheckoutService(s CartStore, delay time.Duration, log *logrus.Logger) *CheckoutService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if delay < 0 {
		delay = 0
	}
	return &CheckoutService{
		store: s,
		delay: delay,
		log:   log,
		now:   time.Now,
		newID: NewOrderToken,
	}
}

// NewOrderToken returns a short uppercase alphanumeric order id.
func NewOrderToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:orderTokenLen])
}

// Submit waits out the simulated payment delay and then places the order
// built from the cart as it stands at that moment. If ctx is done first the
// order is never committed and ErrCheckoutCancelled is returned.
func (u *CheckoutService) Submit(ctx context.Context, form domain.CheckoutForm) (domain.Order, error) {
	if len(u.store.Cart()) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	timer := time.NewTimer(u.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		metrics.RecordCheckoutCancelled()
		u.log.WithField("email", form.Email).Info("checkout cancelled during processing")
		return domain.Order{}, ErrCheckoutCancelled
	case <-timer.C:
	}

	// The timer may fire in the same instant the caller goes away.
	if ctx.Err() != nil {
		metrics.RecordCheckoutCancelled()
		return domain.Order{}, ErrCheckoutCancelled
	}

	now := u.now()
	id := u.newID()
	order, ok := u.store.PlaceOrder(func(items []domain.CartItem, total decimal.Decimal) domain.Order {
		return domain.Order{
			ID:           id,
			CustomerName: form.Name,
			Email:        form.Email,
			Address:      form.Address,
			City:         form.City,
			Items:        items,
			Total:        total,
			Date:         now,
			Status:       domain.StatusProcessing,
			StatusHistory: []domain.StatusEntry{
				{Status: domain.StatusPlaced, Date: now, Note: domain.NotePlaced},
				{Status: domain.StatusProcessing, Date: now, Note: domain.NoteProcessing},
			},
		}
	})
	if !ok {
		return domain.Order{}, ErrEmptyCart
	}
	metrics.RecordOrderPlaced()

	u.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.Total.StringFixed(2),
	}).Info("order placed")

	return order, nil
}
