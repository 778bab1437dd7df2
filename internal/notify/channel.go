// Package notify carries transient user-facing notices (toasts) from any
// component to whoever is listening.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

type Notice struct {
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

type Handler func(Notice)

// Notifier is what emitters depend on.
type Notifier interface {
	Notify(message string, kind ...Kind)
}

type handlerEntry struct {
	id      int64
	handler Handler
}

// Channel is a publish/subscribe bus for notices. Dispatch is synchronous;
// a panicking handler is recovered and logged and does not stop the others.
type Channel struct {
	mu       sync.RWMutex
	handlers []handlerEntry
	nextID   int64
	log      *logrus.Logger
}

var _ Notifier = (*Channel)(nil)

func NewChannel(log *logrus.Logger) *Channel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Channel{log: log}
}

// Subscribe registers handler and returns its de-registration function.
func (c *Channel) Subscribe(handler Handler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers = append(c.handlers, handlerEntry{id: id, handler: handler})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, h := range c.handlers {
				if h.id == id {
					c.handlers = append(c.handlers[:i:i], c.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Notify delivers the notice to every current subscriber. Kind defaults to info.
func (c *Channel) Notify(message string, kind ...Kind) {
	n := Notice{Message: message, Kind: KindInfo}
	if len(kind) > 0 && kind[0] != "" {
		n.Kind = kind[0]
	}

	c.mu.RLock()
	handlers := make([]handlerEntry, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	for _, h := range handlers {
		c.dispatch(h, n)
	}
}

func (c *Channel) dispatch(h handlerEntry, n Notice) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{
				"subscriber": h.id,
				"panic":      r,
			}).Error("notice handler panicked")
		}
	}()
	h.handler(n)
}

// Len reports the number of current subscribers.
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}
