// Command enginedemo wires World, JobSystem, and the input translator into
// a minimal runnable frame loop, the same role cmd/inos-node/main.go played
// for the mesh-networking side of the original tree: a thin driver that
// exercises every package end to end, not a real application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nmxmxh/enginecore/internal/ecs"
	"github.com/nmxmxh/enginecore/internal/event"
	"github.com/nmxmxh/enginecore/internal/input"
	"github.com/nmxmxh/enginecore/internal/job"
	"github.com/nmxmxh/enginecore/internal/kernellog"
)

type transform struct {
	X, Y float32
}

type velocity struct {
	DX, DY float32
}

func main() {
	log := kernellog.Default("enginedemo")

	world := ecs.NewWorld(ecs.DefaultWorldConfig())
	translator := input.NewTranslator(world.Events())
	listeners := event.NewListeners(64)

	workers := runtime.GOMAXPROCS(0) - 1
	if workers < 1 {
		workers = 1
	}
	jobs := job.NewSystem(job.DefaultConfig(workers))

	listeners.Register(event.KeyDown, nil, func(_ interface{}, ev event.Event) {
		kp, err := ev.AsKey()
		if err != nil {
			return
		}
		log.Debug("key down", kernellog.Uint32("key", uint32(kp.Key)))
	})
	listeners.Register(event.Quit, nil, func(_ interface{}, _ event.Event) {
		log.Info("quit event observed")
	})

	world.RegisterSystem(0, func(w *ecs.World, dt float64) {
		batch := make([]event.Event, 32)
		listeners.DrainAndDispatch(w.Events(), batch)
	})

	// The velocity/transform integration system is the per-frame unit of
	// real parallel work: it stays on the driver thread (spec.md §5 —
	// System bodies run on whichever thread the scheduler invoked them on,
	// here that's the driver), but dispatches one job per entity through
	// the job system rather than looping over entities inline. Since the
	// system body itself is not running on a worker goroutine, each child
	// goes through Dispatch (the always-queue driver-seeding entry point),
	// not Run (which would execute inline on this very goroutine and
	// defeat the fan-out). Every child computes its entity's next
	// transform and stages it as a deferred Set command instead of
	// mutating the World directly, honoring spec.md §5's "jobs that touch
	// world state must do so via the CommandBuffer."
	world.RegisterSystem(10, integrateVelocitySystem(jobs, log))

	entities := make([]ecs.EntityHandle, 0, 4)
	seedVelocities := []velocity{{DX: 1, DY: 0.5}, {DX: -0.5, DY: 1}, {DX: 0.25, DY: -0.25}, {DX: 0, DY: 2}}
	for _, v := range seedVelocities {
		e, err := world.Create()
		if err != nil {
			log.Fatal("failed to create entity", kernellog.Err(err))
		}
		_ = world.SetParent(e, ecs.Root)
		_ = ecs.AddComponent(world, e, transform{})
		_ = ecs.AddComponent(world, e, v)
		entities = append(entities, e)
	}

	jobs.Start()
	defer jobs.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runFrameLoop(gctx, world, translator) })

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		log.Error("frame loop exited with error", kernellog.Err(err))
		os.Exit(1)
	}
	fmt.Println("enginedemo: shut down cleanly")
}

// integrateVelocitySystem returns a system function that advances every
// child of ecs.Root by its velocity component, one job per entity.
func integrateVelocitySystem(jobs *job.System, log *kernellog.Logger) func(w *ecs.World, dt float64) {
	return func(w *ecs.World, dt float64) {
		root, handle, err := jobs.CreateJob(func(_ *[64]byte) {}, nil, job.Normal)
		if err != nil {
			log.Error("integration root job unavailable", kernellog.Err(err))
			return
		}

		w.IterChildren(ecs.Root, func(e ecs.EntityHandle) bool {
			child, _, err := jobs.CreateJob(func(_ *[64]byte) {
				vel, err := ecs.GetComponent[velocity](w, e)
				if err != nil {
					return
				}
				tr, err := ecs.GetComponent[transform](w, e)
				if err != nil {
					return
				}
				tr.X += vel.DX * float32(dt)
				tr.Y += vel.DY * float32(dt)
				if err := ecs.PushSetCommand(w, e, tr); err != nil {
					log.Error("failed to stage transform update", kernellog.Err(err))
				}
			}, root, job.Normal)
			if err != nil {
				log.Error("integration child job unavailable", kernellog.Err(err))
				return true
			}
			jobs.Dispatch(child)
			return true
		})
		jobs.Dispatch(root)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := jobs.Wait(ctx, jobs.Resolve(handle)); err != nil {
			log.Error("integration system wait failed", kernellog.Err(err))
		}
	}
}

// runFrameLoop drives World.RunFrame at a fixed tick. RunFrame runs on this
// goroutine directly — per spec.md §5/SPEC_FULL.md §5, World mutation is
// confined to the driver thread, so the frame step itself is never wrapped
// as a job body; any real parallel work a system needs happens inside that
// system's own RegisterSystem callback (see integrateVelocitySystem), via
// the job system and the CommandBuffer.
func runFrameLoop(ctx context.Context, world *ecs.World, translator *input.Translator) error {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	translator.KeyDown(input.KeyW, 0)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			world.RunFrame(0.016)
		}
	}
}
