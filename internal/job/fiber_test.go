package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiber_RunToCompletionWithoutYield(t *testing.T) {
	var ran bool
	f := NewFiber(func(yield func()) { ran = true })
	f.Start()
	suspended := f.SwitchTo()
	assert.False(t, suspended, "a fiber that never calls yield must report completion")
	assert.True(t, ran)
	f.Destroy()
}

func TestFiber_YieldSuspendsAndResumes(t *testing.T) {
	var steps []int
	f := NewFiber(func(yield func()) {
		steps = append(steps, 1)
		yield()
		steps = append(steps, 2)
	})
	f.Start()

	suspended := f.SwitchTo()
	assert.True(t, suspended, "fiber must report still-suspended after calling yield")
	assert.Equal(t, []int{1}, steps)

	suspended = f.SwitchTo()
	assert.False(t, suspended, "fiber must report completion once its body returns")
	assert.Equal(t, []int{1, 2}, steps)
	f.Destroy()
}

func TestWorker_RunsJobOnFreshFiberPerIteration(t *testing.T) {
	w := newWorker(0, &System{workers: nil})
	var ran bool
	j := &Job{fn: func(_ *[64]byte) { ran = true }}
	j.pending.Store(1)
	w.runOnFiber(j)
	assert.True(t, ran)
	assert.True(t, j.Done())
}
