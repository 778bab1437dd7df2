// Package store is the storefront's single writer. It owns the catalog,
// categories, cart, orders and wishlist, enforces their invariants, mirrors
// orders and wishlist to durable storage, and tells subscribers after every
// mutation. Reads always return copies.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/metrics"
	"storefront/internal/notify"
	"storefront/internal/repository"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

type listenerEntry struct {
	id int64
	fn func()
}

type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []string
	cart       []domain.CartItem
	orders     []domain.Order
	wishlist   []string

	lmu       sync.Mutex
	listeners []listenerEntry
	nextID    int64

	orderRepo    repository.OrderRepository
	wishlistRepo repository.WishlistRepository
	notices      notify.Notifier
	publisher    rabbit.PublisherInterface
	log          *logrus.Logger

	now            func() time.Time
	newID          func() string
	persistTimeout time.Duration
}

type Option func(*Store)

func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithPublisher(p rabbit.PublisherInterface) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithProducts sets the initial catalog, most recent first.
func WithProducts(products []domain.Product) Option {
	return func(s *Store) { s.products = slices.Clone(products) }
}

func WithCategories(categories []string) Option {
	return func(s *Store) { s.categories = dedupe(categories) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.persistTimeout = d }
}

// New builds the store and reads the saved orders and wishlist once. A read
// or decode failure on either key is logged and that collection starts empty.
func New(ctx context.Context, orders repository.OrderRepository, wishlist repository.WishlistRepository, notices notify.Notifier, opts ...Option) *Store {
	s := &Store{
		categories:     domain.DefaultCategories(),
		orderRepo:      orders,
		wishlistRepo:   wishlist,
		notices:        notices,
		publisher:      rabbit.NopPublisher{},
		log:            logrus.StandardLogger(),
		now:            time.Now,
		newID:          uuid.NewString,
		persistTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if saved, err := s.orderRepo.Load(ctx); err != nil {
		metrics.RecordPersistFailure(repository.KeyOrders)
		s.log.WithError(err).WithField("key", repository.KeyOrders).Error("failed to load orders, starting empty")
	} else {
		s.orders = saved
	}

	if saved, err := s.wishlistRepo.Load(ctx); err != nil {
		metrics.RecordPersistFailure(repository.KeyWishlist)
		s.log.WithError(err).WithField("key", repository.KeyWishlist).Error("failed to load wishlist, starting empty")
	} else {
		s.wishlist = dedupe(saved)
	}
}

// Subscribe registers fn to run after every mutation and returns its
// de-registration function. Listeners receive no payload; they re-read
// whatever state they need.
func (s *Store) Subscribe(fn func()) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// changed runs every listener. It must be called without s.mu held.
func (s *Store) changed() {
	s.lmu.Lock()
	listeners := slices.Clone(s.listeners)
	s.lmu.Unlock()

	for _, l := range listeners {
		s.callListener(l)
	}
}

func (s *Store) callListener(l listenerEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"listener": l.id,
				"panic":    r,
			}).Error("store listener panicked")
		}
	}()
	l.fn()
}

// Reads ---------------------------------------------------------------------

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.products)
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.productIndex(id); i >= 0 {
		return s.products[i], true
	}
	return domain.Product{}, false
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.categories)
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.cart)
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *Store) Order(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.orderIndex(id); i >= 0 {
		return s.orders[i].Clone(), true
	}
	return domain.Order{}, false
}

func (s *Store) Wishlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.wishlist)
}

func (s *Store) InWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.wishlist, productID)
}

// TotalPrice sums the effective price of every cart line times its quantity.
// It is computed on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Catalog -------------------------------------------------------------------

// AddCategory appends name unless it is blank or already present.
func (s *Store) AddCategory(name string) {
	s.mu.Lock()
	if isBlank(name) || slices.Contains(s.categories, name) {
		s.mu.Unlock()
		return
	}
	s.categories = append(s.categories, name)
	s.mu.Unlock()

	metrics.RecordMutation("addCategory")
	s.changed()
}

// AddProduct creates a product from the draft with a fresh id and no rating
// or reviews, and puts it first in the catalog.
func (s *Store) AddProduct(draft domain.ProductDraft) domain.Product {
	p := draft.Apply(domain.Product{ID: s.newID()})

	s.mu.Lock()
	s.products = append([]domain.Product{p}, s.products...)
	s.mu.Unlock()

	metrics.RecordMutation("addProduct")
	s.changed()
	return p
}

// UpdateProduct replaces the product with the same id and refreshes the
// matching cart line, keeping its quantity. Unknown ids are ignored.
func (s *Store) UpdateProduct(p domain.Product) {
	s.mu.Lock()
	i := s.productIndex(p.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.replaceProductLocked(i, p)
	s.mu.Unlock()

	metrics.RecordMutation("updateProduct")
	s.changed()
}

// ApplyDraft edits the product with the given id from an admin draft in one
// step, keeping its id, rating and reviews. It reports false for an unknown id.
func (s *Store) ApplyDraft(id string, draft domain.ProductDraft) (domain.Product, bool) {
	s.mu.Lock()
	i := s.productIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Product{}, false
	}
	p := draft.Apply(s.products[i])
	s.replaceProductLocked(i, p)
	s.mu.Unlock()

	metrics.RecordMutation("updateProduct")
	s.changed()
	return p, true
}

func (s *Store) replaceProductLocked(i int, p domain.Product) {
	s.products[i] = p
	if j := s.cartIndex(p.ID); j >= 0 {
		s.cart[j] = domain.CartItem{Product: p, Quantity: s.cart[j].Quantity}
	}
}

// DeleteProduct removes the product and its cart line. Orders keep their
// item snapshots.
func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	i := s.productIndex(id)
	j := s.cartIndex(id)
	if i < 0 && j < 0 {
		s.mu.Unlock()
		return
	}
	s.products = slices.DeleteFunc(s.products, func(p domain.Product) bool { return p.ID == id })
	s.cart = slices.DeleteFunc(s.cart, func(c domain.CartItem) bool { return c.ID == id })
	s.mu.Unlock()

	metrics.RecordMutation("deleteProduct")
	s.changed()
}

// Cart ----------------------------------------------------------------------

// AddToCart adds one unit of p, creating the line at quantity 1 if needed.
func (s *Store) AddToCart(p domain.Product) {
	s.mu.Lock()
	if j := s.cartIndex(p.ID); j >= 0 {
		s.cart[j].Quantity++
	} else {
		s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: 1})
	}
	s.mu.Unlock()

	metrics.RecordMutation("addToCart")
	s.changed()
	s.notices.Notify(fmt.Sprintf("Added %s to cart", p.Name))
}

func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	s.cart = slices.DeleteFunc(s.cart, func(c domain.CartItem) bool { return c.ID == id })
	s.mu.Unlock()

	metrics.RecordMutation("removeFromCart")
	s.changed()
}

// UpdateCartQuantity adds delta to the line's quantity, never going below 1.
func (s *Store) UpdateCartQuantity(id string, delta int) {
	s.mu.Lock()
	if j := s.cartIndex(id); j >= 0 {
		s.cart[j].Quantity = max(1, s.cart[j].Quantity+delta)
	}
	s.mu.Unlock()

	metrics.RecordMutation("updateCartQuantity")
	s.changed()
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()

	metrics.RecordMutation("clearCart")
	s.changed()
}

// Orders --------------------------------------------------------------------

// AddOrder records a placed order, most recent first. The caller builds the
// item snapshot, total and initial status history.
func (s *Store) AddOrder(o domain.Order) {
	o = o.Clone()

	s.mu.Lock()
	s.orders = append([]domain.Order{o}, s.orders...)
	s.persistOrdersLocked()
	s.mu.Unlock()

	metrics.RecordMutation("addOrder")
	s.changed()
	s.publish(domain.EventOrderPlaced, o)
}

// PlaceOrder turns the current cart into an order in one step: build gets a
// copy of the cart lines and their total, the returned order is recorded
// first in the list and the cart is emptied. build runs under the store lock
// and must not call back into the store. It reports false when the cart is
// empty.
func (s *Store) PlaceOrder(build func(items []domain.CartItem, total decimal.Decimal) domain.Order) (domain.Order, bool) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return domain.Order{}, false
	}
	items := copyOf(s.cart)
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	o := build(items, total).Clone()
	s.orders = append([]domain.Order{o}, s.orders...)
	s.cart = nil
	s.persistOrdersLocked()
	s.mu.Unlock()

	metrics.RecordMutation("placeOrder")
	s.changed()
	s.publish(domain.EventOrderPlaced, o)
	return o.Clone(), true
}

// UpdateOrderStatus moves the order to status and appends the matching
// history entry. Any status may follow any other.
func (s *Store) UpdateOrderStatus(orderID string, status domain.OrderStatus) {
	s.mu.Lock()
	i := s.orderIndex(orderID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	o := s.setStatusLocked(i, status)
	s.mu.Unlock()

	s.statusChanged(o)
}

// CancelOrder is the customer-side cancellation: it only applies while the
// order is still Processing.
func (s *Store) CancelOrder(orderID string) (domain.Order, error) {
	s.mu.Lock()
	i := s.orderIndex(orderID)
	if i < 0 {
		s.mu.Unlock()
		return domain.Order{}, ErrOrderNotFound
	}
	if s.orders[i].Status != domain.StatusProcessing {
		s.mu.Unlock()
		return domain.Order{}, ErrNotCancellable
	}
	o := s.setStatusLocked(i, domain.StatusCancelled)
	s.mu.Unlock()

	s.statusChanged(o)
	return o.Clone(), nil
}

func (s *Store) setStatusLocked(i int, status domain.OrderStatus) domain.Order {
	o := s.orders[i].Clone()
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, domain.StatusEntry{
		Status: status,
		Date:   s.now(),
		Note:   domain.NoteFor(status),
	})
	s.orders[i] = o
	s.persistOrdersLocked()
	return o
}

func (s *Store) statusChanged(o domain.Order) {
	metrics.RecordMutation("updateOrderStatus")
	s.changed()
	s.notices.Notify(fmt.Sprintf("Order #%s is now %s", o.ID, o.Status))
	s.publish(domain.EventOrderStatusChanged, o)
}

// UpdateOrderTracking sets both tracking fields; an empty url clears it.
func (s *Store) UpdateOrderTracking(orderID, trackingID, trackingURL string) {
	s.mu.Lock()
	i := s.orderIndex(orderID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	o := s.orders[i].Clone()
	o.TrackingID = trackingID
	o.TrackingURL = trackingURL
	s.orders[i] = o
	s.persistOrdersLocked()
	s.mu.Unlock()

	metrics.RecordMutation("updateOrderTracking")
	s.changed()
	s.notices.Notify(fmt.Sprintf("Tracking updated for Order #%s", orderID))
	s.publish(domain.EventOrderTrackingUpdated, o)
}

// Wishlist ------------------------------------------------------------------

// ToggleWishlist flips membership of productID and reports whether it is in
// the wishlist afterwards.
func (s *Store) ToggleWishlist(productID string) bool {
	s.mu.Lock()
	added := !slices.Contains(s.wishlist, productID)
	if added {
		s.wishlist = append(s.wishlist, productID)
	} else {
		s.wishlist = slices.DeleteFunc(s.wishlist, func(id string) bool { return id == productID })
	}
	s.persistWishlistLocked()
	s.mu.Unlock()

	metrics.RecordMutation("toggleWishlist")
	s.changed()
	if added {
		s.notices.Notify("Added to Wishlist")
	} else {
		s.notices.Notify("Removed from Wishlist")
	}
	return added
}

// Helpers -------------------------------------------------------------------

func (s *Store) persistOrdersLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := s.orderRepo.SaveAll(ctx, s.orders); err != nil {
		metrics.RecordPersistFailure(repository.KeyOrders)
		s.log.WithError(err).WithField("key", repository.KeyOrders).Error("failed to save orders")
	}
}

func (s *Store) persistWishlistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := s.wishlistRepo.SaveAll(ctx, s.wishlist); err != nil {
		metrics.RecordPersistFailure(repository.KeyWishlist)
		s.log.WithError(err).WithField("key", repository.KeyWishlist).Error("failed to save wishlist")
	}
}

func (s *Store) publish(pattern string, o domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, pattern, domain.NewOrderEvent(o, s.now())); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"pattern":  pattern,
			"order_id": o.ID,
		}).Warn("failed to publish order event")
	}
}

func (s *Store) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

func (s *Store) cartIndex(id string) int {
	return slices.IndexFunc(s.cart, func(c domain.CartItem) bool { return c.ID == id })
}

func (s *Store) orderIndex(id string) int {
	return slices.IndexFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
}

func copyOf[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
