//go:build linux

package task

import (
	"sync"

	"golang.org/x/sys/unix"
)

// eventfdNotifier backs the notification fd with a Linux eventfd in
// semaphore-less counter mode, the same primitive the teacher's runtime
// reaches for whenever it needs an in-process readiness signal pollable
// alongside real socket fds.
type eventfdNotifier struct {
	fd   int
	once sync.Once
}

func newNotifier() (Notifier, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &eventfdNotifier{fd: fd}, nil
}

func (n *eventfdNotifier) FD() uintptr { return uintptr(n.fd) }

func (n *eventfdNotifier) Signal() {
	buf := [8]byte{0, 0, 0, 0, 0, 0, 0, 1}
	_, _ = unix.Write(n.fd, buf[:])
}

func (n *eventfdNotifier) Close() {
	n.once.Do(func() {
		_ = unix.Close(n.fd)
	})
}
