package notify

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestChannel_NotifyDefaultsToInfo(t *testing.T) {
	c := NewChannel(quietLogger())

	var got []Notice
	c.Subscribe(func(n Notice) { got = append(got, n) })

	c.Notify("hello")
	c.Notify("saved", KindSuccess)

	require.Len(t, got, 2)
	assert.Equal(t, Notice{Message: "hello", Kind: KindInfo}, got[0])
	assert.Equal(t, Notice{Message: "saved", Kind: KindSuccess}, got[1])
}

func TestChannel_Unsubscribe(t *testing.T) {
	c := NewChannel(quietLogger())

	var a, b int
	unsubA := c.Subscribe(func(Notice) { a++ })
	c.Subscribe(func(Notice) { b++ })

	c.Notify("one")
	unsubA()
	unsubA()
	c.Notify("two")

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, c.Len())
}

func TestChannel_PanickingHandlerIsIsolated(t *testing.T) {
	c := NewChannel(quietLogger())

	var delivered []string
	c.Subscribe(func(n Notice) { delivered = append(delivered, "first:"+n.Message) })
	c.Subscribe(func(Notice) { panic("boom") })
	c.Subscribe(func(n Notice) { delivered = append(delivered, "third:"+n.Message) })

	assert.NotPanics(t, func() { c.Notify("x", KindError) })
	assert.ElementsMatch(t, []string{"first:x", "third:x"}, delivered)
}

func TestChannel_NoSubscribers(t *testing.T) {
	c := NewChannel(nil)
	assert.NotPanics(t, func() { c.Notify("nobody listens") })
}
