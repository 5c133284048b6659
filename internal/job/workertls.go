package job

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// workerTLS substitutes for the per-thread worker_id/current-worker pointer
// spec.md §4.11 lists among a worker's thread-local state. Go gives every
// job body its own fiber goroutine (see Worker.runOnFiber), so "thread-local"
// becomes "goroutine-local": a registry keyed by goroutine id, tagged when
// a job starts running on a worker's fiber and cleared when it returns.
var (
	workerTLSMu sync.RWMutex
	workerTLS   = map[int64]*Worker{}
)

// setCurrentWorker tags the calling goroutine as executing on behalf of w.
func setCurrentWorker(w *Worker) {
	id := goroutineID()
	workerTLSMu.Lock()
	workerTLS[id] = w
	workerTLSMu.Unlock()
}

// clearCurrentWorker removes the calling goroutine's worker tag, restoring
// it to worker_id==0 (non-worker) per spec.md §4.11.
func clearCurrentWorker() {
	id := goroutineID()
	workerTLSMu.Lock()
	delete(workerTLS, id)
	workerTLSMu.Unlock()
}

// currentWorker returns the Worker the calling goroutine is executing job
// code for, or nil if the caller is not a worker (worker_id==0).
func currentWorker() *Worker {
	id := goroutineID()
	workerTLSMu.RLock()
	w := workerTLS[id]
	workerTLSMu.RUnlock()
	return w
}

// goroutineID parses the calling goroutine's id out of its own stack trace
// header ("goroutine 37 [running]:"). Go deliberately exposes no supported
// API for this; the stack-trace scrape is the standard workaround used
// anywhere genuine goroutine-local state is needed.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}
