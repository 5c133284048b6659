package job

// Fiber is a stackful-coroutine substitute. True fiber primitives
// (ucontext/makecontext, Windows fibers) have no idiomatic Go equivalent —
// Go's own goroutine stacks are not individually switchable — so per
// spec.md §9's own allowance for "a continuation-passing scheduler,"
// a Fiber here is one goroutine blocked on a single-slot resume channel.
// SwitchTo "jumps" to it by sending on that channel and blocking on the
// fiber's own completion signal, which is exactly the suspend/resume
// handshake a worker needs around a job that yields mid-execution.
type Fiber struct {
	resume   chan struct{}
	done     chan bool // true = yielded (still suspended), false = returned
	fn       func(yield func())
	yield    func()
	finished bool
}

// NewFiber builds a Fiber that will run fn (on first SwitchTo) with a yield
// closure fn can call to suspend itself back to its caller.
func NewFiber(fn func(yield func())) *Fiber {
	f := &Fiber{
		resume: make(chan struct{}),
		done:   make(chan bool),
	}
	f.yield = func() {
		f.done <- true
		<-f.resume
	}
	f.fn = fn
	return f
}

// Start launches the fiber's goroutine. It blocks immediately until the
// first SwitchTo, mirroring a fiber created suspended.
func (f *Fiber) Start() {
	go func() {
		<-f.resume
		f.fn(f.yield)
		f.done <- false
	}()
}

// SwitchTo resumes the fiber and blocks the calling goroutine until the
// fiber either yields or returns. Returns true if the fiber is still
// suspended (called yield) and false if it ran to completion; once it
// returns false the fiber must not be switched to again.
func (f *Fiber) SwitchTo() bool {
	if f.finished {
		return false
	}
	f.resume <- struct{}{}
	yielded := <-f.done
	f.finished = !yielded
	return yielded
}

// Destroy is a no-op marker for symmetry with the fiber-pool lifecycle
// described in spec.md §4.11 — the underlying goroutine exits on its own
// once fn returns, and Go has no manual stack-reclaim primitive to call.
func (f *Fiber) Destroy() {}
