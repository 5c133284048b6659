package job

import "math/rand"

// Worker owns one OS-scheduled goroutine and two deques (high and normal
// priority). It runs jobs popped from its own bottom first, then tries to
// steal from other workers' tops when its own deques run dry, per spec.md
// §4.11's scheduling-loop order: local high, local normal, steal high from
// a random victim, steal normal from a random victim, repeat for a bounded
// number of victims before idling.
type Worker struct {
	ID       int
	high     *Deque
	normal   *Deque
	rng      *rand.Rand
	system   *System
}

func newWorker(id int, system *System) *Worker {
	return &Worker{
		ID:     id,
		high:   NewDeque(256),
		normal: NewDeque(1024),
		rng:    rand.New(rand.NewSource(int64(id)*2654435761 + 1)),
		system: system,
	}
}

// maxStealAttempts bounds how many random victims a worker tries before
// concluding there's genuinely no work and idling on the system's wait gate.
const maxStealAttempts = 8

// nextJob returns the next job this worker should run, or nil if none was
// found after exhausting the steal budget (caller should then idle).
func (w *Worker) nextJob() *Job {
	if j := w.high.PopBottom(); j != nil {
		return j
	}
	if j := w.normal.PopBottom(); j != nil {
		return j
	}
	workers := w.system.workers
	n := len(workers)
	if n <= 1 {
		return nil
	}
	for attempt := 0; attempt < maxStealAttempts; attempt++ {
		victim := workers[w.rng.Intn(n)]
		if victim.ID == w.ID {
			continue
		}
		if j := victim.high.Steal(); j != nil {
			return j
		}
		if j := victim.normal.Steal(); j != nil {
			return j
		}
	}
	return nil
}

// run is the worker's main loop: body of the goroutine System.Start spawns
// per worker. It exits when the system's stop signal closes.
func (w *Worker) run() {
	for {
		select {
		case <-w.system.stop:
			return
		default:
		}
		j := w.nextJob()
		if j == nil {
			w.system.idle(w.system.stop)
			continue
		}
		w.runOnFiber(j)
		// A finished job may be what a parked Wait call (or another idling
		// worker re-checking for stealable work) is waiting on, so every
		// completion bumps the gate alongside every fresh submission.
		w.system.wake()
	}
}

// runOnFiber executes j on a freshly created Fiber and blocks until that
// fiber either yields or returns, per spec.md §4.11 step 5: the worker's
// own goroutine plays the role of the scheduler fibre, switching to a new
// job fibre and switching back when it's done with it. j.run never calls
// yield itself — suspension for a job that waits on a child happens one
// level up, inside System.Wait, which parks its own goroutine rather than
// this fibre — so SwitchTo always reports completion on the first call, but
// routing execution through the fibre keeps the worker loop honoring the
// "one fresh fibre per job, destroyed after it returns" contract rather
// than calling job bodies inline on the scheduler fibre's own stack.
//
// The job body runs on the fiber's own freshly spawned goroutine (see
// Fiber.Start), not on this worker's loop goroutine, so the current-worker
// tag (spec.md §4.11's worker_id thread-local) is set and cleared from
// inside the fiber function, scoped tightly around j.run.
func (w *Worker) runOnFiber(j *Job) {
	f := NewFiber(func(yield func()) {
		setCurrentWorker(w)
		defer clearCurrentWorker()
		j.run()
	})
	f.Start()
	f.SwitchTo()
	f.Destroy()
}

// push enqueues j on this worker's own deque for its priority class. Called
// by System.Run/RunHigh when the caller is itself running on this worker
// (forking more work from inside a job body), and by System.Dispatch/
// DispatchHigh's round-robin seed pick for driver-originated root jobs.
func (w *Worker) push(j *Job) {
	if j.priority == High {
		w.high.PushBottom(j)
	} else {
		w.normal.PushBottom(j)
	}
}
