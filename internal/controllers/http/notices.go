package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/notify"
)

const noticeBuffer = 32

// StreamNotices forwards every notice to the client as a server-sent event
// until the client disconnects. Notices are dropped for a client that stops
// reading.
func (h *Handler) StreamNotices(c *gin.Context) {
	ch := make(chan notify.Notice, noticeBuffer)
	unsubscribe := h.notices.Subscribe(func(n notify.Notice) {
		select {
		case ch <- n:
		default:
			h.log.WithField("message", n.Message).Debug("notice dropped for slow stream client")
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n := <-ch:
			c.SSEvent("notice", n)
			return true
		}
	})
}
