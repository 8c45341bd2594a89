//go:build !linux && !windows

package task

import (
	"os"
	"sync"
)

// pipeNotifier backs the notification fd with an os.Pipe on POSIX
// platforms without eventfd, the same substitute reader/httpasync
// uses for its own completion signal.
type pipeNotifier struct {
	r, w *os.File
	once sync.Once
}

func newNotifier() (Notifier, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &pipeNotifier{r: r, w: w}, nil
}

func (n *pipeNotifier) FD() uintptr { return n.r.Fd() }

func (n *pipeNotifier) Signal() {
	_, _ = n.w.Write([]byte{1})
}

func (n *pipeNotifier) Close() {
	n.once.Do(func() {
		_ = n.r.Close()
		_ = n.w.Close()
	})
}
