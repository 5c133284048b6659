package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverList_NotifyFiltersByTypeAndKind(t *testing.T) {
	o := NewObserverList(8)
	var addFired, setFired, otherTypeFired int

	require.NoError(t, o.Register(1, ObserverAdd, func(_ interface{}, _ EntityHandle) { addFired++ }))
	require.NoError(t, o.Register(1, ObserverSet, func(_ interface{}, _ EntityHandle) { setFired++ }))
	require.NoError(t, o.Register(2, ObserverAdd, func(_ interface{}, _ EntityHandle) { otherTypeFired++ }))

	o.Notify(1, ObserverAdd, nil, InvalidHandle)
	assert.Equal(t, 1, addFired)
	assert.Equal(t, 0, setFired)
	assert.Equal(t, 0, otherTypeFired)
}

func TestObserverList_OutOfSpace(t *testing.T) {
	o := NewObserverList(1)
	require.NoError(t, o.Register(1, ObserverAdd, func(_ interface{}, _ EntityHandle) {}))
	assert.ErrorIs(t, o.Register(2, ObserverAdd, func(_ interface{}, _ EntityHandle) {}), ErrOutOfSpace)
}

func TestObserverList_PanicDoesNotStopRemaining(t *testing.T) {
	o := NewObserverList(8)
	var secondFired bool
	require.NoError(t, o.Register(1, ObserverAdd, func(_ interface{}, _ EntityHandle) { panic("boom") }))
	require.NoError(t, o.Register(1, ObserverAdd, func(_ interface{}, _ EntityHandle) { secondFired = true }))

	assert.NotPanics(t, func() { o.Notify(1, ObserverAdd, nil, InvalidHandle) })
	assert.True(t, secondFired)
}
