// Package pool implements the worker pool and FIFO task queue (C6): a
// fixed number of workers draining a resizable FIFO queue (a slice read
// from a head index, not a circular buffer),
// coordinated by a mutex and two condition variables ("task available",
// "all done"), generalised from the teacher's lib/pool.Pool — which
// pools byte buffers under the same Get/Put/InUse/InPool discipline —
// into a pool that pools units of work instead of memory.
package pool

import (
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/panics"

	"github.com/ashm-dev/byteq/internal/metrics"
)

// Job is a unit of work submitted to the pool.
type Job func()

const initialQueueCapacity = 256

// Pool runs Jobs on a fixed number of goroutines standing in for the
// spec's OS worker threads.
type Pool struct {
	mu          sync.Mutex
	available   *sync.Cond
	done        *sync.Cond
	queue       []Job
	head        int
	activeCount int
	shutdown    bool
	workers     sync.WaitGroup
	lastPanic   any
}

// New starts a Pool with n workers; n <= 0 defaults to
// min(runtime.NumCPU(), 8), matching the spec's default.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
		if n > 8 {
			n = 8
		}
	}

	p := &Pool{queue: make([]Job, 0, initialQueueCapacity)}
	p.available = sync.NewCond(&p.mu)
	p.done = sync.NewCond(&p.mu)

	for i := 0; i < n; i++ {
		p.workers.Add(1)
		go p.workerLoop()
	}
	return p
}

func (p *Pool) workerLoop() {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == p.head && !p.shutdown {
			p.available.Wait()
		}
		if len(p.queue) == p.head && p.shutdown {
			p.mu.Unlock()
			return
		}
		job := p.queue[p.head]
		p.queue[p.head] = nil
		p.head++
		p.activeCount++
		p.compactLocked()
		p.updateMetricsLocked()
		p.mu.Unlock()

		p.runJob(job)

		p.mu.Lock()
		p.activeCount--
		p.updateMetricsLocked()
		if len(p.queue) == p.head && p.activeCount == 0 {
			p.done.Broadcast()
		}
		p.mu.Unlock()
	}
}

// runJob invokes job, recovering and discarding any panic so one
// misbehaving task never kills a worker goroutine — grounded in
// sourcegraph/conc's panic-catching discipline (panics.Catcher). The
// recovered value is kept for LastPanic instead of being lost silently;
// it is never re-raised.
func (p *Pool) runJob(job Job) {
	var catcher panics.Catcher
	catcher.Try(job)
	if r := catcher.Recovered(); r != nil {
		p.mu.Lock()
		p.lastPanic = r
		p.mu.Unlock()
	}
}

// compactLocked drops consumed entries once every queued job has been
// taken, so a long-lived pool doesn't grow its backing array without
// bound. Must be called with mu held.
func (p *Pool) compactLocked() {
	if p.head > 0 && p.head == len(p.queue) {
		p.queue = p.queue[:0]
		p.head = 0
	}
}

// updateMetricsLocked publishes the pool's current occupancy to the
// process-wide gauges. Must be called with mu held; every caller already
// holds it for the queue/activeCount mutation this reports.
func (p *Pool) updateMetricsLocked() {
	metrics.PoolActiveTasks.Set(float64(p.activeCount))
	metrics.PoolQueueLength.Set(float64(len(p.queue) - p.head))
}

// Submit enqueues job and wakes one waiting worker. It grows the queue
// by doubling when full, as the spec requires.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return
	}
	if len(p.queue) == cap(p.queue) {
		grown := make([]Job, len(p.queue)-p.head, 2*cap(p.queue))
		copy(grown, p.queue[p.head:])
		p.queue = grown
		p.head = 0
	}
	p.queue = append(p.queue, job)
	p.updateMetricsLocked()
	p.available.Signal()
}

// Wait blocks until the queue is empty and no job is active.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) != p.head || p.activeCount != 0 {
		p.done.Wait()
	}
}

// ActiveCount reports the number of jobs currently running, for tests
// verifying the "after wait(), active counter is zero" invariant.
func (p *Pool) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeCount
}

// QueueLen reports the number of jobs waiting to run.
func (p *Pool) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) - p.head
}

// LastPanic returns the most recently recovered job panic, if any, so a
// submitter can surface it instead of silently swallowing a bug.
func (p *Pool) LastPanic() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPanic
}

// Close waits for outstanding work, then signals shutdown and joins all
// workers.
func (p *Pool) Close() {
	p.Wait()
	p.mu.Lock()
	p.shutdown = true
	p.available.Broadcast()
	p.mu.Unlock()
	p.workers.Wait()
}
