package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemScheduler_RunsInOrder(t *testing.T) {
	s := NewSystemScheduler()
	var order []int
	s.Register(5, func(_ *World, _ float64) { order = append(order, 5) })
	s.Register(1, func(_ *World, _ float64) { order = append(order, 1) })
	s.Register(3, func(_ *World, _ float64) { order = append(order, 3) })

	s.Run(nil, 0.016)
	assert.Equal(t, []int{1, 3, 5}, order)
	assert.Equal(t, 3, s.Len())
}

func TestSystemScheduler_StableForEqualOrder(t *testing.T) {
	s := NewSystemScheduler()
	var order []int
	s.Register(1, func(_ *World, _ float64) { order = append(order, 1) })
	s.Register(1, func(_ *World, _ float64) { order = append(order, 2) })

	s.Run(nil, 0)
	assert.Equal(t, []int{1, 2}, order, "equal-order registrations keep insertion order")
}

func TestSystemScheduler_PanicDoesNotStopRemaining(t *testing.T) {
	s := NewSystemScheduler()
	var ranAfter bool
	s.Register(0, func(_ *World, _ float64) { panic("system exploded") })
	s.Register(1, func(_ *World, _ float64) { ranAfter = true })

	assert.NotPanics(t, func() { s.Run(nil, 0.016) })
	assert.True(t, ranAfter, "a panicking system must not prevent later systems from running this frame")
}
