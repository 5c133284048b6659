package ecs

const sentinel = ^uint32(0) // u32::MAX — root / end-of-list

// Hierarchy tracks parent/first-child/next-sibling relationships over
// entity slot indices. At most one parent per entity; a child appears in
// exactly one parent's child list. Callers must not introduce cycles —
// attach does not validate against them.
type Hierarchy struct {
	parent      []uint32
	firstChild  []uint32
	nextSibling []uint32
}

// NewHierarchy builds a hierarchy sized for cap entity slots, all
// initialized as roots with no children.
func NewHierarchy(cap int) *Hierarchy {
	h := &Hierarchy{
		parent:      make([]uint32, cap),
		firstChild:  make([]uint32, cap),
		nextSibling: make([]uint32, cap),
	}
	for i := range h.parent {
		h.parent[i] = sentinel
		h.firstChild[i] = sentinel
		h.nextSibling[i] = sentinel
	}
	return h
}

// Attach unlinks child from its current parent (if any) and either makes it
// a root (parentOrRoot == sentinel) or prepends it to parentOrRoot's child
// list. Prepending means iter_children yields the most-recently-attached
// child first.
func (h *Hierarchy) Attach(child, parentOrRoot uint32) {
	if h.parent[child] != sentinel {
		h.unlink(child)
	}
	h.parent[child] = parentOrRoot
	if parentOrRoot == sentinel {
		h.nextSibling[child] = sentinel
		return
	}
	h.nextSibling[child] = h.firstChild[parentOrRoot]
	h.firstChild[parentOrRoot] = child
}

// SetRoot detaches child from any parent, making it a root.
func (h *Hierarchy) SetRoot(child uint32) {
	h.Attach(child, sentinel)
}

// unlink removes child from its current parent's sibling list via a linear
// scan. No-op if child is already a root.
func (h *Hierarchy) unlink(child uint32) {
	p := h.parent[child]
	if p == sentinel {
		return
	}
	if h.firstChild[p] == child {
		h.firstChild[p] = h.nextSibling[child]
		return
	}
	cur := h.firstChild[p]
	for cur != sentinel {
		next := h.nextSibling[cur]
		if next == child {
			h.nextSibling[cur] = h.nextSibling[child]
			return
		}
		cur = next
	}
}

// IterChildren visits parent's children in reverse order of their most
// recent attach (i.e. most-recently-attached first), stopping early if
// visit returns false.
func (h *Hierarchy) IterChildren(parent uint32, visit func(child uint32) bool) {
	cur := h.firstChild[parent]
	for cur != sentinel {
		if !visit(cur) {
			return
		}
		cur = h.nextSibling[cur]
	}
}

// Children materializes IterChildren's output as a slice, for callers that
// don't need the early-exit form.
func (h *Hierarchy) Children(parent uint32) []uint32 {
	var out []uint32
	h.IterChildren(parent, func(c uint32) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Parent returns the raw parent slot index, or the sentinel if parent is a
// root.
func (h *Hierarchy) Parent(child uint32) uint32 { return h.parent[child] }

// Reset clears child/parent/sibling state for idx back to "fresh root",
// used when a slot is recycled by HandlePool so stale sibling links don't
// leak into the next occupant (component data is deliberately NOT swept on
// reuse — see World.Destroy doc comment — but hierarchy links, being part
// of the tree's own consistency invariant rather than component payload,
// are cleared here).
func (h *Hierarchy) Reset(idx uint32) {
	h.unlink(idx)
	h.parent[idx] = sentinel
	h.firstChild[idx] = sentinel
	h.nextSibling[idx] = sentinel
}

// RootSentinel exposes the sentinel value used to mean "root" at the
// World-facing API boundary.
const RootSentinel = sentinel
