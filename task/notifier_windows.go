//go:build windows

package task

import (
	"net"
	"sync"
)

// loopbackNotifier backs the notification fd with a connected loopback
// TCP pair: Windows has no fd-compatible eventfd/pipe a WSAPoll-style
// multiplexer can select on directly, so the spec's own reference
// implementation falls back to a local socket pair, which this mirrors.
type loopbackNotifier struct {
	listener net.Listener
	conn     net.Conn // write side, held open by the notifier
	peer     net.Conn // read side, whose fd is handed out via FD
	once     sync.Once
}

func newNotifier() (Notifier, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	defer ln.Close()

	acceptCh := make(chan net.Conn, 1)
	errCh := make(chan error, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			errCh <- err
			return
		}
		acceptCh <- c
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		return nil, err
	}

	var peer net.Conn
	select {
	case peer = <-acceptCh:
	case err := <-errCh:
		conn.Close()
		return nil, err
	}

	return &loopbackNotifier{conn: conn, peer: peer}, nil
}

// FD is unused on Windows builds; callers poll the peer connection
// through net.Conn's Read/SetReadDeadline instead of a raw descriptor.
func (n *loopbackNotifier) FD() uintptr { return 0 }

func (n *loopbackNotifier) Signal() {
	_, _ = n.conn.Write([]byte{1})
}

func (n *loopbackNotifier) Close() {
	n.once.Do(func() {
		_ = n.conn.Close()
		_ = n.peer.Close()
	})
}
