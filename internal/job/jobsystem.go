// Package job implements a work-stealing job scheduler: a fixed-size pool
// of Job records, two Chase-Lev deques per worker (high/normal priority),
// and a bounded number of concurrently-suspended wait-with-continuation
// fibers.
package job

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/nmxmxh/enginecore/internal/kernellog"
)

// DefaultMaxJobs is the pool capacity spec.md §4.11 calls out as the
// baseline budget for a single engine instance's in-flight job graph.
const DefaultMaxJobs = 4096

// System owns the worker pool, the job pool, and the idle/wake gate. One
// System per engine instance.
type System struct {
	workers  []*Worker
	pool     *Pool
	gate     *gate
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	seed     atomic.Uint64

	// waitSem bounds how many goroutines may simultaneously block inside
	// Wait with suspension — the native side's equivalent of the fixed
	// fiber pool spec.md §4.11 sizes alongside the job pool, so a wait
	// storm can't unboundedly balloon parked goroutines.
	waitSem *semaphore.Weighted

	log *kernellog.Logger
}

// Config sizes a System.
type Config struct {
	Workers      int
	MaxJobs      int
	MaxSuspended int
}

// DefaultConfig returns one worker per logical core's worth of headroom
// left to the caller to fill in (Workers has no sane static default; set it
// from runtime.GOMAXPROCS(0) at the call site) and spec.md's job/fiber pool
// sizes.
func DefaultConfig(workers int) Config {
	return Config{Workers: workers, MaxJobs: DefaultMaxJobs, MaxSuspended: 256}
}

// NewSystem builds a System per cfg. Call Start to spin up workers.
func NewSystem(cfg Config) *System {
	s := &System{
		pool:    NewPool(cfg.MaxJobs),
		gate:    newGate(),
		stop:    make(chan struct{}),
		waitSem: semaphore.NewWeighted(int64(cfg.MaxSuspended)),
		log:     kernellog.Default("job"),
	}
	s.workers = make([]*Worker, cfg.Workers)
	for i := range s.workers {
		s.workers[i] = newWorker(i, s)
	}
	return s
}

// Start launches one goroutine per configured worker.
func (s *System) Start() {
	s.wg.Add(len(s.workers))
	for _, w := range s.workers {
		w := w
		go func() {
			defer s.wg.Done()
			w.run()
		}()
	}
	s.log.Info("job system started", kernellog.Int("workers", len(s.workers)))
}

// Stop signals every worker to exit and blocks until they have. Idempotent.
func (s *System) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.gate.bump() // wake any worker currently idling so it observes stop
	s.wg.Wait()
}

// idle parks the calling worker goroutine until new work is published or
// stop fires. last/next-epoch bookkeeping lives in the caller (Worker.run)
// only implicitly — idle itself always re-checks the gate's current epoch
// each call, which is sufficient here because a worker re-enters nextJob
// immediately after waking and only calls idle again if that still finds
// nothing.
func (s *System) idle(stop <-chan struct{}) {
	s.gate.wait(s.gate.epoch.Load(), stop)
}

// wake notifies idling workers that new work is available.
func (s *System) wake() { s.gate.bump() }

// nextWorker round-robins a seed index across workers, used to pick which
// worker's deque a freshly created root job lands on.
func (s *System) nextWorker() *Worker {
	n := uint64(len(s.workers))
	idx := s.seed.Add(1) % n
	return s.workers[idx]
}

// CreateJob allocates a job that runs fn, optionally as a child of parent
// (pass nil for a root job). It does not schedule the job; call Run/RunHigh
// from worker-executing code that forks more work, or Dispatch/DispatchHigh
// from the driver thread to seed a job onto the pool.
func (s *System) CreateJob(fn Func, parent *Job, prio Priority) (*Job, Handle, error) {
	return s.pool.Alloc(fn, parent, prio)
}

// Run submits j per spec.md §4.12's run(h): if the calling goroutine is
// itself executing as a worker (worker_id != 0, tracked via the
// current-worker tag set around every job body — see workertls.go), j is
// pushed onto that worker's own deque, the cheap owner-side push with no
// round-robin seed involved. Otherwise the caller is running on the driver
// thread or some other non-worker goroutine, and per spec j runs inline on
// the caller's own stack instead of being queued.
func (s *System) Run(j *Job) {
	j.priority = Normal
	if w := currentWorker(); w != nil {
		w.push(j)
		s.wake()
		return
	}
	j.run()
}

// RunHigh submits j at high priority with the same worker/non-worker split
// as Run.
func (s *System) RunHigh(j *Job) {
	j.priority = High
	if w := currentWorker(); w != nil {
		w.push(j)
		s.wake()
		return
	}
	j.run()
}

// Dispatch always hands j to a worker's normal-priority deque via
// round-robin, regardless of what goroutine calls it, and wakes any idling
// worker. spec.md §4.12's run(h) is defined in terms of an
// already-running worker forking more work; it has no opinion on how the
// very first job of a frame ever reaches the pool, since no goroutine
// starts out tagged as a worker. Dispatch is that seed: the driver thread's
// entry point for injecting genuinely parallel work (see SPEC_FULL.md's
// driver loop), distinct from Run's inline-when-non-worker rule.
func (s *System) Dispatch(j *Job) {
	j.priority = Normal
	s.nextWorker().push(j)
	s.wake()
}

// DispatchHigh is Dispatch at high priority.
func (s *System) DispatchHigh(j *Job) {
	j.priority = High
	s.nextWorker().push(j)
	s.wake()
}

// Wait blocks the calling goroutine until j (and every descendant spawned
// under it) completes. Every caller, worker goroutine or not, parks behind
// waitSem so the number of simultaneously-suspended waiters stays bounded,
// then spins on the gate exactly like an idling worker — this is the "wait
// with suspension" path from spec.md §4.11/§4.12, with a goroutine park
// standing in for a fiber suspend/resume. A nil j (what Resolve returns
// once the job has finished and its slot was recycled) counts as complete.
func (s *System) Wait(ctx context.Context, j *Job) error {
	if j == nil || j.Done() {
		return nil
	}
	if err := s.waitSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.waitSem.Release(1)
	last := s.gate.epoch.Load()
	for !j.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		default:
		}
		last = s.gate.wait(last, s.stop)
	}
	return nil
}

// Resolve looks up the live job for h, or nil if h is stale.
func (s *System) Resolve(h Handle) *Job { return s.pool.Resolve(h) }
