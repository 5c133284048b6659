package job

import (
	"sync/atomic"
)

// Priority selects which of a worker's two deques a job is queued on.
type Priority uint8

const (
	Normal Priority = iota
	High
)

// payloadBytes is the inline data capacity of a Job record. spec.md's
// 128-byte fixed record is a C-struct constraint; in Go the function
// pointer, atomic counters, and bookkeeping fields already occupy their own
// words, so the constraint is applied to the inline scratch payload instead
// (see SPEC_FULL.md §3) — 64 bytes covers the common case of a handful of
// entity handles or small value parameters without a heap allocation.
const payloadBytes = 64

// Func is a unit of work. It receives the job's inline payload and runs to
// completion on whatever fiber the scheduler resumed it on.
type Func func(payload *[payloadBytes]byte)

// Job is one scheduled unit of work. Jobs are pool-allocated (see Pool) and
// never individually garbage collected; a generation counter in Handle
// detects use of a stale reference to a recycled slot.
type Job struct {
	fn       Func
	payload  [payloadBytes]byte
	parent   *Job
	pending  atomic.Int32 // 1 (self) + unfinished children; job completes when this hits 0
	priority Priority
	gen      uint32
	slot     uint32
	pool     *Pool
}

// Handle is an opaque, generation-checked reference to a submitted Job.
type Handle struct {
	slot uint32
	gen  uint32
}

// run executes the job's function, then propagates completion: decrements
// its own pending counter, and if it hits zero, recursively finishes its
// parent the same way. This is the "parent waits for all descendants"
// fork-join rule from spec.md §4.11.
func (j *Job) run() {
	if j.fn != nil {
		j.fn(&j.payload)
	}
	j.finish()
}

func (j *Job) finish() {
	for cur := j; cur != nil; {
		if cur.pending.Add(-1) != 0 {
			return
		}
		parent := cur.parent
		if cur.pool != nil {
			cur.pool.release(cur)
		}
		cur = parent
	}
}

// Done reports whether j and every descendant job spawned under it (via
// Alloc's parent argument) have finished running.
func (j *Job) Done() bool { return j.pending.Load() == 0 }

// Pool is a fixed-capacity free list of Job slots (a buffered channel of
// slot indices, not a lock-free CAS list), addressed by
// Handle so that a reference to a finished-and-recycled slot is detectably
// stale rather than silently aliasing unrelated work — the same
// generation-tag discipline used by ecs.HandlePool, applied here to avoid
// per-job heap allocation under the scheduler's hot path.
type Pool struct {
	slots []Job
	free  chan uint32
}

// NewPool builds a pool with room for capacity concurrently-live jobs.
func NewPool(capacity int) *Pool {
	p := &Pool{
		slots: make([]Job, capacity),
		free:  make(chan uint32, capacity),
	}
	for i := range p.slots {
		p.slots[i].slot = uint32(i)
		p.slots[i].pool = p
		p.free <- uint32(i)
	}
	return p
}

// ErrPoolExhausted is returned by Alloc when every slot is currently live.
// Callers should treat this the same as spec.md's job-creation backpressure:
// run a frame's worth of work and retry, rather than growing unbounded.
type poolExhaustedError struct{}

func (poolExhaustedError) Error() string { return "job: pool exhausted" }

var ErrPoolExhausted error = poolExhaustedError{}

// Alloc reserves a slot for a new job. fn and parent may be nil (parent nil
// means a root job with no fork-join dependency).
func (p *Pool) Alloc(fn Func, parent *Job, prio Priority) (*Job, Handle, error) {
	select {
	case idx := <-p.free:
		j := &p.slots[idx]
		j.fn = fn
		j.parent = parent
		j.priority = prio
		j.pending.Store(1)
		if parent != nil {
			parent.pending.Add(1)
		}
		return j, Handle{slot: idx, gen: j.gen}, nil
	default:
		return nil, Handle{}, ErrPoolExhausted
	}
}

// release returns a finished job's slot to the free list and bumps its
// generation so stale Handles referencing it are detectably invalid.
func (p *Pool) release(j *Job) {
	j.gen++
	j.fn = nil
	j.parent = nil
	p.free <- j.slot
}

// Resolve returns the live *Job for h, or nil if h's generation is stale
// (the slot has since been recycled for a different job).
func (p *Pool) Resolve(h Handle) *Job {
	j := &p.slots[h.slot]
	if j.gen != h.gen {
		return nil
	}
	return j
}
