package ecs

import (
	"github.com/nmxmxh/enginecore/internal/bytecopy"
	"github.com/nmxmxh/enginecore/internal/event"
)

// WorldConfig sizes every fixed-capacity arena the World owns. Defaults
// match spec.md's sizing guidance.
type WorldConfig struct {
	MaxEntities     int
	MaxComponents   int
	MaxObservers    int
	MaxCommands     int
	CommandStage    int
	EventQueueCap   int
}

// DefaultWorldConfig returns sane defaults for a single engine instance.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		MaxEntities:   1 << 16,
		MaxComponents: 256,
		MaxObservers:  512,
		MaxCommands:   4096,
		CommandStage:  256 * 1024,
		EventQueueCap: 256,
	}
}

// World is the façade combining HandlePool, Hierarchy, ComponentStore,
// ObserverList, CommandBuffer, and SystemScheduler into one owner, per
// spec.md §9's resolution of the ECS's cyclic object graph: World is the
// single arena owner, and everything else addresses entities by
// generation-tagged index rather than holding references to each other.
type World struct {
	handles    *HandlePool
	hierarchy  *Hierarchy
	components *ComponentStore
	observers  *ObserverList
	commands   *CommandBuffer
	scheduler  *SystemScheduler
	events     *event.Queue
}

// NewWorld builds a World sized by cfg.
func NewWorld(cfg WorldConfig) *World {
	return &World{
		handles:    NewHandlePool(cfg.MaxEntities),
		hierarchy:  NewHierarchy(cfg.MaxEntities),
		components: NewComponentStore(cfg.MaxComponents),
		observers:  NewObserverList(cfg.MaxObservers),
		commands:   NewCommandBuffer(cfg.MaxCommands, cfg.CommandStage),
		scheduler:  NewSystemScheduler(),
		events:     event.NewQueue(cfg.EventQueueCap),
	}
}

// Events exposes the world's event queue so the driver can push platform
// input and drain script-facing listeners once per frame.
func (w *World) Events() *event.Queue { return w.events }

// Observers exposes the observer registry for direct registration.
func (w *World) Observers() *ObserverList { return w.observers }

// Create allocates a new entity. O(1) amortized.
func (w *World) Create() (EntityHandle, error) {
	return w.handles.Create()
}

// Destroy invalidates h.
//
// Per spec.md §3/§9: this does NOT cascade into the component store. A
// destroyed entity's sparse-set slots are not swept: every component
// operation below re-validates the handle first, so nothing can read them
// through h again, but an entity that Create later places in the same slot
// index sees the stale components as its own. A caller that needs
// components gone must issue explicit Remove calls (or deferred Remove
// commands) before or instead of Destroy. This is a deliberate gap, not an
// oversight — see SPEC_FULL.md §9.
func (w *World) Destroy(h EntityHandle) error {
	if err := w.handles.Destroy(h); err != nil {
		return err
	}
	w.hierarchy.Reset(h.Index())
	return nil
}

// IsValid reports whether h identifies a currently live entity.
func (w *World) IsValid(h EntityHandle) bool { return w.handles.IsValid(h) }

// SetParent reparents child to parentOrRoot. Pass ecs.Root to make child a
// root. Both non-Root handles are validated first.
func (w *World) SetParent(child, parentOrRoot EntityHandle) error {
	if !w.handles.IsValid(child) {
		return ErrInvalidHandle
	}
	if parentOrRoot == Root {
		w.hierarchy.SetRoot(child.Index())
		return nil
	}
	if !w.handles.IsValid(parentOrRoot) {
		return ErrInvalidHandle
	}
	w.hierarchy.Attach(child.Index(), parentOrRoot.Index())
	return nil
}

// IterChildren visits parent.Index()'s most-recently-attached-first child
// list.
func (w *World) IterChildren(parent EntityHandle, visit func(child EntityHandle) bool) {
	w.hierarchy.IterChildren(parent.Index(), func(idx uint32) bool {
		return visit(w.handles.HandleFromIndex(idx))
	})
}

// RegisterSystem adds fn to the frame scheduler at the given order.
func (w *World) RegisterSystem(order uint8, fn func(w *World, dt float64)) {
	w.scheduler.Register(order, fn)
}

// typeKey identifies a Go component type T by its package-qualified name
// (see typeName), hashed to a ComponentTypeId.
func typeKey[T any]() (ComponentTypeId, string) {
	var zero T
	name := typeName(zero)
	return HashTypeName(name), name
}

// AddComponent adds v as entity e's component of type T. Notifies
// registered Add observers and pushes a ComponentAdd event on success.
func AddComponent[T any](w *World, e EntityHandle, v T) error {
	if !w.handles.IsValid(e) {
		return ErrInvalidHandle
	}
	id, name := typeKey[T]()
	set, err := EnsureStorage[T](w.components, id, name, w.handles.Cap())
	if err != nil {
		return err
	}
	if err := set.Add(e.Index(), v); err != nil {
		return err
	}
	w.afterMutate(id, ObserverAdd, event.ComponentAdd, e)
	return nil
}

// SetComponent overwrites entity e's existing component of type T.
func SetComponent[T any](w *World, e EntityHandle, v T) error {
	if !w.handles.IsValid(e) {
		return ErrInvalidHandle
	}
	id, name := typeKey[T]()
	set, err := EnsureStorage[T](w.components, id, name, w.handles.Cap())
	if err != nil {
		return err
	}
	if err := set.Set(e.Index(), v); err != nil {
		return err
	}
	w.afterMutate(id, ObserverSet, event.ComponentSet, e)
	return nil
}

// GetComponent returns entity e's component of type T.
func GetComponent[T any](w *World, e EntityHandle) (T, error) {
	var zero T
	if !w.handles.IsValid(e) {
		return zero, ErrInvalidHandle
	}
	id, name := typeKey[T]()
	set, err := EnsureStorage[T](w.components, id, name, w.handles.Cap())
	if err != nil {
		return zero, err
	}
	return set.Get(e.Index())
}

// HasComponent reports whether entity e has a component of type T.
func HasComponent[T any](w *World, e EntityHandle) bool {
	if !w.handles.IsValid(e) {
		return false
	}
	id, name := typeKey[T]()
	set, err := EnsureStorage[T](w.components, id, name, w.handles.Cap())
	if err != nil {
		return false
	}
	return set.Has(e.Index())
}

// RemoveComponent removes entity e's component of type T, if present.
// Removing an absent component is a silent no-op.
func RemoveComponent[T any](w *World, e EntityHandle) error {
	if !w.handles.IsValid(e) {
		return ErrInvalidHandle
	}
	id, name := typeKey[T]()
	set, err := EnsureStorage[T](w.components, id, name, w.handles.Cap())
	if err != nil {
		return err
	}
	if !set.Has(e.Index()) {
		return nil
	}
	set.Remove(e.Index())
	w.afterMutate(id, ObserverRemove, event.ComponentRemove, e)
	return nil
}

// afterMutate notifies observers and emits the corresponding event,
// carrying (idx, gen, lo32(type_id), hi32(type_id)) per spec.md §4.7.
func (w *World) afterMutate(typeID ComponentTypeId, ok ObserverKind, kind event.Kind, e EntityHandle) {
	w.observers.Notify(typeID, ok, w, e)
	w.events.Push(event.NewCrossLayerEvent(kind, event.CrossLayerPayload{
		P0: e.Index(),
		P1: uint32(e.Generation()),
		P2: uint32(typeID),
		P3: uint32(typeID >> 32),
	}))
}

// PushCommand stages a deferred mutation, copying payload (if non-nil, for
// Add/Set) into the buffer's byte arena.
func (w *World) PushCommand(cmd Command, payload []byte) error {
	return w.commands.Push(cmd, payload)
}

// PushAddCommand stages a deferred Add<T> for flush-time application.
func PushAddCommand[T any](w *World, e EntityHandle, v T) error {
	id, name := typeKey[T]()
	return w.commands.Push(Command{Kind: CmdAdd, TypeID: id, TypeName: name, EntityIdx: e.Index()}, bytecopy.Encode(v))
}

// PushSetCommand stages a deferred Set<T> for flush-time application.
func PushSetCommand[T any](w *World, e EntityHandle, v T) error {
	id, name := typeKey[T]()
	return w.commands.Push(Command{Kind: CmdSet, TypeID: id, TypeName: name, EntityIdx: e.Index()}, bytecopy.Encode(v))
}

// PushRemoveCommand stages a deferred Remove<T>.
func PushRemoveCommand[T any](w *World, e EntityHandle) error {
	id, name := typeKey[T]()
	return w.commands.Push(Command{Kind: CmdRemove, TypeID: id, TypeName: name, EntityIdx: e.Index()}, nil)
}

// PushDestroyCommand stages a deferred Destroy.
func (w *World) PushDestroyCommand(e EntityHandle) error {
	return w.commands.Push(Command{Kind: CmdDestroy, EntityIdx: e.Index()}, nil)
}

// RunFrame runs every registered system once, in order, then flushes the
// command buffer.
func (w *World) RunFrame(dt float64) {
	w.scheduler.Run(w, dt)
	w.FlushCommands()
}

// FlushCommands applies every staged command in push order via the
// type-erased component-store vtable, notifies observers, pushes the
// corresponding event, and clears the buffer.
//
// A command whose entity handle is no longer valid by flush time is
// silently skipped — the command was authored against a world snapshot
// that no longer holds, per spec.md §7's propagation policy. Destroy
// commands for an already-invalid entity are likewise a no-op.
func (w *World) FlushCommands() {
	for i := 0; i < w.commands.Len(); i++ {
		cmd, payload := w.commands.At(i)
		idx := cmd.EntityIdx
		h := w.handles.HandleFromIndex(idx)
		if !w.handles.IsValid(h) {
			continue
		}
		switch cmd.Kind {
		case CmdAdd:
			if err := w.components.AddBytes(cmd.TypeID, cmd.TypeName, idx, payload); err == nil {
				w.afterMutate(cmd.TypeID, ObserverAdd, event.ComponentAdd, h)
			}
		case CmdSet:
			if err := w.components.SetBytes(cmd.TypeID, cmd.TypeName, idx, payload); err == nil {
				w.afterMutate(cmd.TypeID, ObserverSet, event.ComponentSet, h)
			}
		case CmdRemove:
			if w.components.HasBytes(cmd.TypeID, cmd.TypeName, idx) {
				w.components.RemoveBytes(cmd.TypeID, cmd.TypeName, idx)
				w.afterMutate(cmd.TypeID, ObserverRemove, event.ComponentRemove, h)
			}
		case CmdDestroy:
			_ = w.Destroy(h)
		}
	}
	w.commands.Clear()
}
