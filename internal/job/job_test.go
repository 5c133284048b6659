package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_AllocReleaseGeneration(t *testing.T) {
	p := NewPool(2)
	j, h, err := p.Alloc(nil, nil, Normal)
	require.NoError(t, err)
	assert.Same(t, j, p.Resolve(h))

	j.run() // pending 1 -> 0, releases back to pool
	assert.Nil(t, p.Resolve(h), "stale handle to a recycled slot must resolve to nil")
}

func TestPool_ExhaustionReturnsError(t *testing.T) {
	p := NewPool(1)
	_, _, err := p.Alloc(nil, nil, Normal)
	require.NoError(t, err)
	_, _, err = p.Alloc(nil, nil, Normal)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestJob_ParentWaitsForChildren(t *testing.T) {
	p := NewPool(4)
	parent, _, err := p.Alloc(func(_ *[64]byte) {}, nil, Normal)
	require.NoError(t, err)

	child, _, err := p.Alloc(func(_ *[64]byte) {}, parent, Normal)
	require.NoError(t, err)

	parent.run()
	assert.False(t, parent.Done(), "parent must not be done while a child is outstanding")

	child.run()
	assert.True(t, parent.Done(), "parent completes once its last child finishes")
}

func TestJob_MultipleChildrenAllMustFinish(t *testing.T) {
	p := NewPool(8)
	parent, _, err := p.Alloc(func(_ *[64]byte) {}, nil, Normal)
	require.NoError(t, err)

	var children []*Job
	for i := 0; i < 3; i++ {
		c, _, err := p.Alloc(func(_ *[64]byte) {}, parent, Normal)
		require.NoError(t, err)
		children = append(children, c)
	}

	parent.run()
	for i, c := range children {
		c.run()
		if i < len(children)-1 {
			assert.False(t, parent.Done())
		}
	}
	assert.True(t, parent.Done())
}
