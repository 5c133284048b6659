package ecs

import (
	"github.com/nmxmxh/enginecore/internal/event"
	"github.com/nmxmxh/enginecore/internal/kernellog"
)

var schedulerLog = kernellog.Default("ecs")

// System is a per-frame callback plus the order it runs in (ascending,
// lower runs first).
type System struct {
	Order uint8
	Run   func(w *World, dt float64)
}

// SystemScheduler holds registered systems in Order-sorted sequence and
// runs them once per frame with no parallelism at this layer.
//
// Insertion keeps the slice sorted with a single bubble pass from the new
// entry toward the front, the same small-N insertion style the retrieval
// pack's vi-fighter World.AddSystem uses — systems-per-frame counts are
// small enough that an O(n) insert beats maintaining a heap.
type SystemScheduler struct {
	systems []System
}

// NewSystemScheduler returns an empty scheduler.
func NewSystemScheduler() *SystemScheduler {
	return &SystemScheduler{}
}

// Register adds fn at order, re-sorting to keep the list ascending by
// Order.
func (s *SystemScheduler) Register(order uint8, fn func(w *World, dt float64)) {
	s.systems = append(s.systems, System{Order: order, Run: fn})
	for i := len(s.systems) - 1; i > 0 && s.systems[i-1].Order > s.systems[i].Order; i-- {
		s.systems[i-1], s.systems[i] = s.systems[i], s.systems[i-1]
	}
}

// Run invokes every registered system once, in stored sequence. A system
// that panics is recovered into a ScriptError, logged, and does not stop
// the remaining systems from running this frame — the simulation continues
// from the next frame regardless, per spec.md §7.
func (s *SystemScheduler) Run(w *World, dt float64) {
	for _, sys := range s.systems {
		s.runSafely(sys, w, dt)
	}
}

func (s *SystemScheduler) runSafely(sys System, w *World, dt float64) {
	defer func() {
		if se := event.Recover(recover()); se != nil {
			schedulerLog.Error("system panicked", kernellog.Err(se), kernellog.Int("order", int(sys.Order)))
		}
	}()
	sys.Run(w, dt)
}

// Len returns the number of registered systems.
func (s *SystemScheduler) Len() int { return len(s.systems) }
