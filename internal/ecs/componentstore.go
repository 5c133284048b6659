package ecs

import (
	"hash/fnv"

	"github.com/nmxmxh/enginecore/internal/bytecopy"
)

// ComponentTypeId is a 64-bit FNV-1a hash of a component type's canonical
// registered name. Two distinct types must not collide; on detected
// collision ComponentStore refuses to alias them (see mapSlot.name below).
type ComponentTypeId uint64

// HashTypeName derives a ComponentTypeId from a type's canonical name using
// FNV-1a. No third-party FNV implementation appears anywhere in the
// retrieval pack's domain dependency set, so this uses the standard
// library's hash/fnv rather than inventing or importing one solely for this
// single call site (documented in DESIGN.md).
func HashTypeName(name string) ComponentTypeId {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return ComponentTypeId(h.Sum64())
}

// componentVTable type-erases operations on a concrete SparseSet[T] so the
// command-flush path (CommandBuffer) can operate on raw bytes without
// knowing T.
type componentVTable struct {
	has      func(idx uint32) bool
	addBytes func(idx uint32, payload []byte) error
	setBytes func(idx uint32, payload []byte) error
	remove   func(idx uint32)
}

// mapSlot is one open-addressed entry in ComponentStore, carrying the
// type's full name as a secondary key so a 64-bit hash collision between
// two distinct types is detected rather than silently aliased.
type mapSlot struct {
	used  bool
	id    ComponentTypeId
	name  string
	store interface{} // *SparseSet[T], kept for typed access by ecs callers
	vt    componentVTable
}

// ComponentStore is an open-addressed registry mapping a ComponentTypeId to
// its per-type SparseSet. Probing starts at id & (cap-1) (cap is a power of
// two) and proceeds linearly; a full store returns ErrOutOfSpace.
type ComponentStore struct {
	slots []mapSlot
	mask  uint64
	count int
}

// NewComponentStore builds a store with room for up to maxComponents
// distinct component types. maxComponents must be a power of two; it is
// rounded up if not.
func NewComponentStore(maxComponents int) *ComponentStore {
	cap := nextPow2(maxComponents)
	return &ComponentStore{
		slots: make([]mapSlot, cap),
		mask:  uint64(cap - 1),
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// probe finds the slot for (id, name): an existing matching slot, or the
// first empty slot on the linear probe sequence. ok is false only when the
// table is completely full and id isn't already present.
func (cs *ComponentStore) probe(id ComponentTypeId, name string) (index int, found bool, ok bool) {
	start := int(uint64(id) & cs.mask)
	n := len(cs.slots)
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		s := &cs.slots[idx]
		if !s.used {
			return idx, false, true
		}
		if s.id == id {
			// Secondary key: a true collision between two distinct type
			// names at the same 64-bit hash is a precondition failure,
			// not something to alias silently.
			return idx, s.name == name, true
		}
	}
	return 0, false, false
}

// EnsureStorage installs a SparseSet[T] for id/name if one doesn't already
// exist (idempotent). cap is the per-entity-slot capacity shared by all
// component stores (== the owning HandlePool's capacity).
func EnsureStorage[T any](cs *ComponentStore, id ComponentTypeId, name string, cap int) (*SparseSet[T], error) {
	idx, found, ok := cs.probe(id, name)
	if !ok {
		return nil, ErrOutOfSpace
	}
	if found {
		set, isT := cs.slots[idx].store.(*SparseSet[T])
		if !isT {
			// Same 64-bit id and registered name, but a different Go type.
			return nil, ErrOutOfSpace
		}
		return set, nil
	}
	if cs.slots[idx].used {
		// Same 64-bit id, different registered name: a genuine hash
		// collision between two distinct component types.
		return nil, ErrOutOfSpace
	}

	set := NewSparseSet[T](cap)
	cs.slots[idx] = mapSlot{
		used:  true,
		id:    id,
		name:  name,
		store: set,
		vt: componentVTable{
			has: set.Has,
			addBytes: func(i uint32, payload []byte) error {
				v, err := bytecopy.Decode[T](payload)
				if err != nil {
					return err
				}
				return set.Add(i, v)
			},
			setBytes: func(i uint32, payload []byte) error {
				v, err := bytecopy.Decode[T](payload)
				if err != nil {
					return err
				}
				return set.Set(i, v)
			},
			remove: set.Remove,
		},
	}
	cs.count++
	return set, nil
}

// lookup returns the vtable for id/name if storage has been installed.
func (cs *ComponentStore) lookup(id ComponentTypeId, name string) (*componentVTable, bool) {
	idx, found, ok := cs.probe(id, name)
	if !ok || !found {
		return nil, false
	}
	return &cs.slots[idx].vt, true
}

// HasBytes, AddBytes, SetBytes, RemoveBytes are the byte-erased entry
// points World.FlushCommands uses, since a staged command only carries a
// type id and a payload slice, never a concrete Go type parameter.
func (cs *ComponentStore) HasBytes(id ComponentTypeId, name string, idx uint32) bool {
	vt, ok := cs.lookup(id, name)
	return ok && vt.has(idx)
}

func (cs *ComponentStore) AddBytes(id ComponentTypeId, name string, idx uint32, payload []byte) error {
	vt, ok := cs.lookup(id, name)
	if !ok {
		return ErrComponentMissing
	}
	return vt.addBytes(idx, payload)
}

func (cs *ComponentStore) SetBytes(id ComponentTypeId, name string, idx uint32, payload []byte) error {
	vt, ok := cs.lookup(id, name)
	if !ok {
		return ErrComponentMissing
	}
	return vt.setBytes(idx, payload)
}

func (cs *ComponentStore) RemoveBytes(id ComponentTypeId, name string, idx uint32) {
	vt, ok := cs.lookup(id, name)
	if !ok {
		return // silent no-op, matches SparseSet.Remove on a missing component
	}
	vt.remove(idx)
}
