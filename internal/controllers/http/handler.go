package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/infra/genai"
	"storefront/internal/metrics"
	"storefront/internal/notify"
	"storefront/internal/services"
	"storefront/internal/store"
)

// statusClientClosedRequest is written when the shopper leaves checkout
// before the order is placed.
const statusClientClosedRequest = 499

const adminRealm = `Basic realm="admin"`

// OrderPlacer runs the checkout flow.
type OrderPlacer interface {
	Submit(ctx context.Context, form domain.CheckoutForm) (domain.Order, error)
}

type Handler struct {
	store    *store.Store
	checkout OrderPlacer
	gen      genai.TextGenerator
	verifier auth.CredentialVerifier
	notices  *notify.Channel
	limiter  *RateLimiter
	log      *logrus.Logger
}

func NewHandler(s *store.Store, checkout OrderPlacer, gen genai.TextGenerator, verifier auth.CredentialVerifier,
	notices *notify.Channel, limiter *RateLimiter, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		store:    s,
		checkout: checkout,
		gen:      gen,
		verifier: verifier,
		notices:  notices,
		limiter:  limiter,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)

	r.GET("/cart", h.GetCart)
	r.POST("/cart/:id", h.AddToCart)
	r.PATCH("/cart/:id", h.UpdateCartQuantity)
	r.DELETE("/cart/:id", h.RemoveFromCart)
	r.DELETE("/cart", h.ClearCart)

	r.POST("/checkout", h.Checkout)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/orders/:id/cancel", h.CancelOrder)

	r.GET("/wishlist", h.GetWishlist)
	r.POST("/wishlist/:id", h.ToggleWishlist)

	r.GET("/notifications", h.StreamNotices)
	r.POST("/chat", h.limiter.Middleware(), h.Chat)

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin", h.RequireAdmin())
	{
		admin.POST("/categories", h.AddCategory)
		admin.POST("/products", h.AddProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.GET("/orders", h.ListOrders)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.PUT("/orders/:id/tracking", h.UpdateOrderTracking)
		admin.POST("/describe", h.limiter.Middleware(), h.Describe)
	}
}

// Shop -----------------------------------------------------------------------

func (h *Handler) ListProducts(c *gin.Context) {
	products := services.FilterProducts(h.store.Products(), c.Query("category"), c.Query("q"))
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, ok := h.store.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Categories())
}

// Cart -----------------------------------------------------------------------

func (h *Handler) cartView() CartResponse {
	items := h.store.Cart()
	return CartResponse{
		Items: items,
		Total: h.store.TotalPrice(),
		Count: services.CartCount(items),
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) AddToCart(c *gin.Context) {
	p, ok := h.store.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	h.store.AddToCart(p)
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.store.UpdateCartQuantity(c.Param("id"), req.Delta)
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("id"))
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.store.ClearCart()
	c.JSON(http.StatusOK, h.cartView())
}

// Checkout runs for as long as the processing delay. If the client goes away
// first the order is dropped and nothing is written back.
func (h *Handler) Checkout(c *gin.Context) {
	var form domain.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.checkout.Submit(c.Request.Context(), form)
	switch {
	case errors.Is(err, services.ErrCheckoutCancelled):
		c.AbortWithStatus(statusClientClosedRequest)
		return
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.log.WithError(err).Error("checkout failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "checkout failed"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Orders ---------------------------------------------------------------------

func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, services.FilterOrders(h.store.Orders(), c.Query("status")))
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, ok := h.store.Order(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// CancelOrder lets the shopper cancel an order that is still Processing.
func (h *Handler) CancelOrder(c *gin.Context) {
	o, err := h.store.CancelOrder(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, store.ErrNotCancellable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// Wishlist -------------------------------------------------------------------

func (h *Handler) GetWishlist(c *gin.Context) {
	ids := h.store.Wishlist()
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := h.store.Product(id); ok {
			products = append(products, p)
		}
	}
	c.JSON(http.StatusOK, WishlistResponse{IDs: ids, Products: products})
}

func (h *Handler) ToggleWishlist(c *gin.Context) {
	id := c.Param("id")
	in := h.store.ToggleWishlist(id)
	c.JSON(http.StatusOK, ToggleWishlistResponse{ProductID: id, InWishlist: in})
}

// Assistant ------------------------------------------------------------------

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reply := h.gen.Chat(c.Request.Context(), req.History, req.Message, h.store.Products())
	c.JSON(http.StatusOK, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleModel,
		Text:      reply,
		Timestamp: time.Now(),
	})
}

// Admin ----------------------------------------------------------------------

// RequireAdmin checks HTTP basic credentials against the verifier.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", adminRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: auth.ErrInvalidCredentials.Error()})
			return
		}
		if err := h.verifier.Verify(c.Request.Context(), user, pass); err != nil {
			h.log.WithField("user", user).Warn("admin authentication failed")
			c.Header("WWW-Authenticate", adminRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: auth.ErrInvalidCredentials.Error()})
			return
		}
		c.Next()
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.verifier.Verify(c.Request.Context(), req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.store.AddCategory(req.Name)
	c.JSON(http.StatusOK, h.store.Categories())
}

func (h *Handler) bindDraft(c *gin.Context) (domain.ProductDraft, bool) {
	var draft domain.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return draft, false
	}
	if err := draft.Validate(h.store.Categories()); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message, Field: verr.Field})
			return draft, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return draft, false
	}
	return draft, true
}

func (h *Handler) AddProduct(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, h.store.AddProduct(draft))
}

// UpdateProduct applies the draft to the stored product. An unknown id is
// accepted and ignored.
func (h *Handler) UpdateProduct(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}
	updated, found := h.store.ApplyDraft(c.Param("id"), draft)
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	h.store.DeleteProduct(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status " + string(req.Status), Field: "status"})
		return
	}
	h.store.UpdateOrderStatus(c.Param("id"), req.Status)
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateOrderTracking(c *gin.Context) {
	var draft domain.TrackingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.store.UpdateOrderTracking(c.Param("id"), draft.TrackingID, draft.TrackingURL)
	c.Status(http.StatusNoContent)
}

func (h *Handler) Describe(c *gin.Context) {
	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	text := h.gen.GenerateDescription(c.Request.Context(), req.Name, req.Category, req.Features)
	c.JSON(http.StatusOK, DescribeResponse{Description: text, Fallback: genai.IsFallback(text)})
}
