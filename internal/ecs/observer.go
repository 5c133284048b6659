package ecs

import (
	"github.com/nmxmxh/enginecore/internal/event"
	"github.com/nmxmxh/enginecore/internal/kernellog"
)

var observerLog = kernellog.Default("ecs")

// ObserverKind identifies which component lifecycle event a callback is
// registered for.
type ObserverKind int

const (
	ObserverAdd ObserverKind = iota
	ObserverSet
	ObserverRemove
)

// ObserverFunc is invoked synchronously, on the caller's thread, when a
// component of the registered type undergoes the registered lifecycle
// transition.
type ObserverFunc func(world interface{}, h EntityHandle)

type observerSlot struct {
	typeID ComponentTypeId
	kind   ObserverKind
	fn     ObserverFunc
	active bool
}

// ObserverList is a fixed-capacity registry of observer callbacks, fired in
// registration order by linear scan.
type ObserverList struct {
	slots []observerSlot
	count int
}

// NewObserverList builds a list with room for cap registrations.
func NewObserverList(cap int) *ObserverList {
	return &ObserverList{slots: make([]observerSlot, cap)}
}

// Register appends a callback slot. Returns ErrOutOfSpace if full.
func (o *ObserverList) Register(typeID ComponentTypeId, kind ObserverKind, fn ObserverFunc) error {
	if o.count >= len(o.slots) {
		return ErrOutOfSpace
	}
	o.slots[o.count] = observerSlot{typeID: typeID, kind: kind, fn: fn, active: true}
	o.count++
	return nil
}

// Notify invokes every active, matching callback in registration order, on
// the caller's thread. Per spec, observer callbacks are not expected to
// panic; if one does, remaining observers still fire (best-effort: the
// panic is recovered and logged here, and Notify returns normally).
func (o *ObserverList) Notify(typeID ComponentTypeId, kind ObserverKind, world interface{}, h EntityHandle) {
	for i := 0; i < o.count; i++ {
		s := &o.slots[i]
		if !s.active || s.typeID != typeID || s.kind != kind {
			continue
		}
		o.invokeSafely(s.fn, world, h)
	}
}

func (o *ObserverList) invokeSafely(fn ObserverFunc, world interface{}, h EntityHandle) {
	defer func() {
		if se := event.Recover(recover()); se != nil {
			observerLog.Error("observer panicked", kernellog.Err(se))
		}
	}()
	fn(world, h)
}
