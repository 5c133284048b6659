package job

import (
	"sync/atomic"
)

// Deque is a Chase-Lev work-stealing deque of *Job. The owning worker pushes
// and pops from the bottom (LIFO, cheap, no contention with thieves in the
// common case); any other worker may steal from the top (FIFO, contends
// only with other thieves and with the owner's pop when the deque is down
// to its last element).
//
// Fixed-capacity power-of-two ring per spec.md §4.10 — the backing array is
// sized once at construction and never grows; PushBottom panics rather than
// silently reallocating out from under a concurrent Steal.
type Deque struct {
	bottom int64
	top    int64
	buf    *dequeBuf
}

type dequeBuf struct {
	mask  int64
	slots []atomic.Pointer[Job]
}

func newDequeBuf(capacity int64) *dequeBuf {
	return &dequeBuf{mask: capacity - 1, slots: make([]atomic.Pointer[Job], capacity)}
}

func (b *dequeBuf) get(i int64) *Job    { return b.slots[i&b.mask].Load() }
func (b *dequeBuf) put(i int64, j *Job) { b.slots[i&b.mask].Store(j) }
func (b *dequeBuf) cap() int64          { return b.mask + 1 }

// NewDeque builds an empty deque with the given fixed capacity (rounded up
// to the next power of two, minimum 32). PushBottom panics once the deque
// holds this many jobs.
func NewDeque(capacity int) *Deque {
	c := int64(32)
	for c < int64(capacity) {
		c <<= 1
	}
	return &Deque{buf: newDequeBuf(c)}
}

// PushBottom is owner-only: append j at the bottom. Overflow panics — per
// spec.md §4.10's "push_bottom: ... Overflow panics," a full deque is a
// caller precondition failure (the worker is generating jobs faster than
// its fixed-size ring and any thief can drain), not a case to silently
// grow through.
func (d *Deque) PushBottom(j *Job) {
	b := d.bottom
	t := atomic.LoadInt64(&d.top)
	if b-t >= d.buf.cap() {
		panic("job: deque overflow: push_bottom on a full fixed-capacity deque")
	}
	d.buf.put(b, j)
	atomic.StoreInt64(&d.bottom, b+1) // release: publish the slot write before bottom advances
}

// PopBottom is owner-only: remove and return the most recently pushed job,
// or nil if the deque is empty. On a last-element race against a concurrent
// Steal, exactly one of the two wins; the loser gets nil.
func (d *Deque) PopBottom() *Job {
	buf := d.buf
	b := d.bottom - 1
	atomic.StoreInt64(&d.bottom, b)
	t := atomic.LoadInt64(&d.top)
	if t > b {
		// Already empty; restore bottom to a consistent empty state.
		atomic.StoreInt64(&d.bottom, t)
		return nil
	}
	j := buf.get(b)
	if t == b {
		// Last element: race a concurrent Steal for it via CAS on top.
		if !atomic.CompareAndSwapInt64(&d.top, t, t+1) {
			j = nil
		}
		atomic.StoreInt64(&d.bottom, t+1)
		return j
	}
	return j
}

// Steal is called by any non-owner worker: remove and return the oldest job
// (FIFO from the thief's point of view), or nil if the deque looked empty or
// another thief won a concurrent race for the same slot.
func (d *Deque) Steal() *Job {
	t := atomic.LoadInt64(&d.top)
	b := atomic.LoadInt64(&d.bottom)
	if t >= b {
		return nil
	}
	buf := d.buf
	j := buf.get(t)
	if !atomic.CompareAndSwapInt64(&d.top, t, t+1) {
		return nil
	}
	return j
}

// Len is an approximation useful only for diagnostics/metrics — the true
// size can change between the two loads on any concurrently-running deque.
func (d *Deque) Len() int {
	b := atomic.LoadInt64(&d.bottom)
	t := atomic.LoadInt64(&d.top)
	if b < t {
		return 0
	}
	return int(b - t)
}

// Empty reports whether the deque currently looks empty to the caller.
func (d *Deque) Empty() bool { return d.Len() == 0 }
