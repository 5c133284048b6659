package event

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// ErrPlatformFailure is a pass-through sentinel for platform window/backend
// open failures. Nothing in this core ever raises it itself — spec.md §1
// puts platform backends out of scope — it exists so a driver has a single
// sentinel to wrap and propagate, completing spec.md §7's error taxonomy.
var ErrPlatformFailure = errors.New("event: platform failure")

// ScriptError wraps a panic recovered from a script-registered callback (an
// ECS observer, a frame system, or an event listener) with the traceback
// and goroutine id spec.md §7 requires the host to print. The core's
// callback boundaries (ecs.ObserverList.Notify, ecs.SystemScheduler.Run,
// Listeners.Dispatch) recover panics into one of these, log it, and move on
// to the next callback — "the core guarantees remaining observers still
// fire" per spec.md §7 — rather than letting one bad callback take down a
// frame.
type ScriptError struct {
	Cause       interface{}
	Traceback   string
	GoroutineID string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script error on goroutine %s: %v\n%s", e.GoroutineID, e.Cause, e.Traceback)
}

// Recover turns a recovered panic value into a *ScriptError, capturing the
// current goroutine's stack and id. Returns nil if r is nil, so callers can
// write `if se := event.Recover(recover()); se != nil { ... }` directly in
// a deferred func.
func Recover(r interface{}) *ScriptError {
	if r == nil {
		return nil
	}
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])
	return &ScriptError{Cause: r, Traceback: stack, GoroutineID: goroutineID(stack)}
}

// goroutineID extracts the numeric id from runtime.Stack's leading
// "goroutine N [running]:" line — the standard trick for naming the current
// goroutine, since Go deliberately has no public API for it.
func goroutineID(stack string) string {
	fields := strings.Fields(stack)
	if len(fields) >= 2 {
		if _, err := strconv.Atoi(fields[1]); err == nil {
			return fields[1]
		}
	}
	return "unknown"
}
