package task

// Notifier is the completion-signalling transport a worker uses to wake
// a host blocked in its own I/O multiplexer. Each platform backs it with
// whatever primitive that platform's poller understands.
type Notifier interface {
	// FD returns the descriptor the host registers for readability.
	FD() uintptr
	// Signal marks the fd readable. Called exactly once, by the worker,
	// on the RUNNING→DONE transition.
	Signal()
	// Close releases the underlying OS resources. Safe to call from
	// either side of the orphan race, and safe to call twice.
	Close()
}
