package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListeners_DispatchFiltersByKind(t *testing.T) {
	l := NewListeners(4)
	var keyCount, moveCount int
	assert.True(t, l.Register(KeyDown, nil, func(_ interface{}, _ Event) { keyCount++ }))
	assert.True(t, l.Register(MouseMove, nil, func(_ interface{}, _ Event) { moveCount++ }))

	l.Dispatch(NewKeyEvent(KeyDown, KeyPayload{Key: 1, State: 1}))
	assert.Equal(t, 1, keyCount)
	assert.Equal(t, 0, moveCount)
}

func TestListeners_RegisterFullReturnsFalse(t *testing.T) {
	l := NewListeners(1)
	assert.True(t, l.Register(KeyDown, nil, func(_ interface{}, _ Event) {}))
	assert.False(t, l.Register(KeyUp, nil, func(_ interface{}, _ Event) {}))
}

func TestListeners_DrainAndDispatch(t *testing.T) {
	q := NewQueue(8)
	l := NewListeners(4)
	var got []uint16
	require.True(t, l.Register(KeyDown, nil, func(_ interface{}, ev Event) {
		kp, err := ev.AsKey()
		require.NoError(t, err)
		got = append(got, kp.Key)
	}))

	q.Push(NewKeyEvent(KeyDown, KeyPayload{Key: 1, State: 1}))
	q.Push(NewKeyEvent(KeyDown, KeyPayload{Key: 2, State: 1}))

	batch := make([]Event, 8)
	n := l.DrainAndDispatch(q, batch)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint16{1, 2}, got)
	assert.Equal(t, 0, q.Len())
}

func TestListeners_ContextPassedThrough(t *testing.T) {
	l := NewListeners(1)
	type ctxT struct{ tag string }
	ctx := &ctxT{tag: "hi"}
	var seen *ctxT
	l.Register(KeyDown, ctx, func(c interface{}, _ Event) { seen = c.(*ctxT) })
	l.Dispatch(NewKeyEvent(KeyDown, KeyPayload{}))
	assert.Same(t, ctx, seen)
}

func TestListeners_PanicDoesNotStopRemaining(t *testing.T) {
	l := NewListeners(4)
	var ranAfter bool
	l.Register(KeyDown, nil, func(_ interface{}, _ Event) { panic("listener exploded") })
	l.Register(KeyDown, nil, func(_ interface{}, _ Event) { ranAfter = true })

	assert.NotPanics(t, func() { l.Dispatch(NewKeyEvent(KeyDown, KeyPayload{})) })
	assert.True(t, ranAfter, "a panicking listener must not prevent later listeners from firing")
}
