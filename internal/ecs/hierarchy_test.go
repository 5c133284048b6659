package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHierarchy_AttachAndChildren(t *testing.T) {
	h := NewHierarchy(8)
	h.Attach(1, 0)
	h.Attach(2, 0)
	h.Attach(3, 0)

	// Most-recently-attached first.
	assert.Equal(t, []uint32{3, 2, 1}, h.Children(0))
	assert.Equal(t, uint32(0), h.Parent(1))
}

func TestHierarchy_ReattachMovesChild(t *testing.T) {
	h := NewHierarchy(8)
	h.Attach(1, 0)
	h.Attach(2, 0)
	h.Attach(1, 5) // move 1 from parent 0 to parent 5

	assert.Equal(t, []uint32{2}, h.Children(0))
	assert.Equal(t, []uint32{1}, h.Children(5))
	assert.Equal(t, uint32(5), h.Parent(1))
}

func TestHierarchy_SetRootClearsParent(t *testing.T) {
	h := NewHierarchy(8)
	h.Attach(1, 0)
	h.SetRoot(1)
	assert.Equal(t, sentinel, h.Parent(1))
	assert.Empty(t, h.Children(0))
}

func TestHierarchy_IterChildrenEarlyExit(t *testing.T) {
	h := NewHierarchy(8)
	h.Attach(1, 0)
	h.Attach(2, 0)
	h.Attach(3, 0)

	var seen []uint32
	h.IterChildren(0, func(child uint32) bool {
		seen = append(seen, child)
		return len(seen) < 2
	})
	assert.Equal(t, []uint32{3, 2}, seen)
}

func TestHierarchy_Reset(t *testing.T) {
	h := NewHierarchy(8)
	h.Attach(1, 0)
	h.Reset(1)
	assert.Equal(t, sentinel, h.Parent(1))
	assert.Empty(t, h.Children(0))
}
