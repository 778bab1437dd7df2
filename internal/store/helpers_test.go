package store

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func CreateMockProduct(id, name, p string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    price(p),
		Category: string(domain.CategoryElectronics),
	}
}

func CreateMockOrder(id string, at time.Time, items ...domain.CartItem) domain.Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return domain.Order{
		ID:           id,
		CustomerName: "Ada Lovelace",
		Email:        "ada@example.com",
		Address:      "12 Analytical St",
		City:         "London",
		Items:        items,
		Total:        total,
		Date:         at,
		Status:       domain.StatusProcessing,
		StatusHistory: []domain.StatusEntry{
			{Status: domain.StatusPlaced, Date: at, Note: domain.NotePlaced},
			{Status: domain.StatusProcessing, Date: at, Note: domain.NoteProcessing},
		},
	}
}

type noticeRecorder struct {
	notices []notify.Notice
}

func (r *noticeRecorder) messages() []string {
	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Message
	}
	return out
}

type fixture struct {
	store   *Store
	kv      *memory.KV
	notices *noticeRecorder
	changes *int
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	kv := memory.NewKV()
	ch := notify.NewChannel(quietLogger())
	rec := &noticeRecorder{}
	ch.Subscribe(func(n notify.Notice) { rec.notices = append(rec.notices, n) })

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	s := New(context.Background(),
		repository.NewOrderRepository(kv),
		repository.NewWishlistRepository(kv),
		ch, opts...)

	changes := 0
	s.Subscribe(func() { changes++ })
	return fixture{store: s, kv: kv, notices: rec, changes: &changes}
}

const (
	TestOrderID   = "K3J9X2QWE"
	TestProductA  = "a"
	TestProductB  = "b"
	TestPriceA    = "19.99"
	TestPriceB    = "5.50"
	TestSalePrice = "14.99"
)
