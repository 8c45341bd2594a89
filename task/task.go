// Package task implements the race-free task lifecycle protocol (C6):
// a RUNNING→{DONE,ORPHANED} atomic state machine that lets a host abandon
// a submitted task without leaking resources or double-freeing, plus the
// completion-notification transport the host polls for readiness.
package task

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/diffresult"
)

// State is the task's atomic lifecycle state.
type State int32

const (
	Running State = iota
	Done
	Orphaned
)

// Kind identifies what a task computes, and therefore which half of its
// output slot is populated.
type Kind int

const (
	KindCompare Kind = iota
	KindCompareDir
	KindCompareArchive
	KindCompareDirURLs
)

// Verdict is the scalar result of a file/URL compare task.
type Verdict int

const (
	VerdictEqual Verdict = iota
	VerdictDifferent
)

// DiffResulter is the directory/archive/dir-vs-URL-map diff result type.
// task depends only on diffresult, not on any of the three differencer
// packages, so none of them needs to import task back.
type DiffResulter = *diffresult.Result

// Task is the host-visible handle for one asynchronous comparison. Its
// id is a uuid purely for log correlation; it carries no protocol
// meaning.
type Task struct {
	ID   uuid.UUID
	Kind Kind

	state State

	notifier Notifier

	// Output slot: populated exactly once, by the worker, before the
	// state transitions to Done. Safe for the host to read once it has
	// observed Done via the atomic load in Result.
	verdict Verdict
	diff    DiffResulter
	err     error
}

// New constructs a RUNNING task with a fresh notification transport.
func New(kind Kind) (*Task, error) {
	n, err := newNotifier()
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOOM, err, "create notifier")
	}
	return &Task{ID: uuid.New(), Kind: kind, state: Running, notifier: n}, nil
}

// setOutputVerdict and setOutputDiff are called by the worker exactly
// once, after the compare completes, before the worker attempts the
// RUNNING→DONE CAS.
func (t *Task) setOutputVerdict(v Verdict, err error) {
	t.verdict = v
	t.err = err
}

func (t *Task) setOutputDiff(d DiffResulter, err error) {
	t.diff = d
	t.err = err
}

// completeFromWorker runs the worker side of the protocol: try
// RUNNING→DONE; on success, signal the notification fd and return. On
// failure (the host already orphaned the task), the worker owns the
// memory and is responsible for releasing it — here that means closing
// the notifier, since Go's GC reclaims the Task itself; the notifier's
// Close is idempotent (sync.Once), whichever side reaches it first.
func (t *Task) completeFromWorker() {
	if atomic.CompareAndSwapInt32((*int32)(&t.state), int32(Running), int32(Done)) {
		t.notifier.Signal()
		return
	}
	// CAS failed: host already transitioned us to Orphaned. The worker
	// is now responsible for the final free.
	t.notifier.Close()
}

// RunVerdict executes fn (a scalar compare) and completes the task with
// its result, following the worker half of the lifecycle protocol.
func (t *Task) RunVerdict(fn func() (Verdict, error)) {
	v, err := fn()
	t.setOutputVerdict(v, err)
	t.completeFromWorker()
}

// RunDiff executes fn (a directory/archive compare) and completes the
// task with its result.
func (t *Task) RunDiff(fn func() (DiffResulter, error)) {
	d, err := fn()
	t.setOutputDiff(d, err)
	t.completeFromWorker()
}

// State returns the task's current lifecycle state. The load also acts
// as the acquire barrier the spec calls for: once this returns Done, all
// of the worker's writes to the output slot are visible to the caller.
func (t *Task) State() State {
	return State(atomic.LoadInt32((*int32)(&t.state)))
}

// NotifyFD returns the notification fd the host should register with its
// I/O multiplexer. It remains valid until Close.
func (t *Task) NotifyFD() uintptr { return t.notifier.FD() }

var ErrNotReady = byteqerr.New(byteqerr.CodeNotReady, "task result requested before readiness")

// Result returns the task's outcome. Calling it before the host has
// observed readiness on the notification fd is documented as undefined
// by the spec; Go has no safe way to express true UB, so this returns
// ErrNotReady instead of risking a data race on the output slot.
func (t *Task) Result() (Verdict, DiffResulter, error) {
	if t.State() == Running {
		return 0, nil, ErrNotReady
	}
	return t.verdict, t.diff, t.err
}

// Close runs the host side of the orphan protocol: if the task is
// already Done, free (close the notifier) immediately. Otherwise attempt
// RUNNING→ORPHANED; on success the worker will free when it finishes. If
// the CAS fails, the worker finished between our load and our CAS, so we
// own the free.
func (t *Task) Close() {
	if t.State() == Done {
		t.notifier.Close()
		return
	}
	if atomic.CompareAndSwapInt32((*int32)(&t.state), int32(Running), int32(Orphaned)) {
		return // worker will close the notifier when it completes
	}
	t.notifier.Close()
}
