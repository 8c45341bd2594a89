package pool

import (
	"sync"
	"sync/atomic"
)

var (
	global     atomic.Pointer[Pool]
	globalInit sync.Mutex
)

// Global returns the process-wide default pool, creating it on first use
// behind a mutex slow path; subsequent calls hit the atomic fast path.
func Global() *Pool {
	if p := global.Load(); p != nil {
		return p
	}
	globalInit.Lock()
	defer globalInit.Unlock()
	if p := global.Load(); p != nil {
		return p
	}
	p := New(0)
	global.Store(p)
	return p
}

// ResetGlobal tears down the process-wide default pool, if one exists.
// The pointer is swapped to nil before Close runs so a concurrent Global()
// call creates a fresh pool rather than observing the one being closed.
func ResetGlobal() {
	p := global.Swap(nil)
	if p != nil {
		p.Close()
	}
}
