// Package httpasync implements the non-blocking HTTP reader (C3's
// "async" modality). The spec models this on libcurl's multi-interface
// socket-action API (fd + events + perform + timeout); Go's net/http has
// no equivalent state machine, so this package exposes the same external
// contract — a notification fd the host polls, and a non-blocking Perform
// step — over a goroutine that runs the ordinary blocking request and
// streams bytes into a growable linear buffer, draining via os.Pipe
// writes that the host's own multiplexer can select on.
package httpasync

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/reader/httpreader"
)

const initialBufCap = 64 * 1024

// Reader drives an HTTP GET on an internal goroutine and exposes its
// progress through a host-pollable notification fd.
type Reader struct {
	mu   sync.Mutex
	buf  []byte // linear receive buffer, compacted on drain
	err  error
	done bool

	notifyR *os.File
	notifyW *os.File

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start opens url asynchronously, beginning the transfer on a background
// goroutine immediately.
func Start(ctx context.Context, url string, opts httpreader.Options) (*Reader, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOOM, err, "create notification pipe")
	}

	ctx, cancel := context.WithCancel(ctx)
	r := &Reader{
		buf:     make([]byte, 0, initialBufCap),
		notifyR: pr,
		notifyW: pw,
		cancel:  cancel,
	}

	r.wg.Add(1)
	go r.run(ctx, url, opts)

	return r, nil
}

func (r *Reader) run(ctx context.Context, url string, opts httpreader.Options) {
	defer r.wg.Done()
	defer r.signal()

	hr, err := httpreader.Open(ctx, url, opts)
	if err != nil {
		r.finish(err)
		return
	}
	defer hr.Close()

	chunk := make([]byte, 64*1024)
	for {
		select {
		case <-ctx.Done():
			r.finish(ctx.Err())
			return
		default:
		}

		n, rerr := hr.Read(chunk)
		if n > 0 {
			r.append(chunk[:n])
			r.signal()
		}
		if rerr != nil {
			if rerr == io.EOF {
				r.finish(nil)
			} else {
				r.finish(rerr)
			}
			return
		}
	}
}

func (r *Reader) append(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = growAppend(r.buf, b)
}

// growAppend appends b to buf, doubling capacity as needed with an
// overflow check, matching the spec's "grown by doubling with
// arithmetic-overflow check" requirement for the receive buffer.
func growAppend(buf, b []byte) []byte {
	need := len(buf) + len(b)
	if need < 0 { // overflow
		panic("httpasync: receive buffer size overflow")
	}
	if cap(buf) < need {
		newCap := cap(buf)
		if newCap == 0 {
			newCap = initialBufCap
		}
		for newCap < need {
			doubled := newCap * 2
			if doubled <= newCap { // overflow guard
				newCap = need
				break
			}
			newCap = doubled
		}
		grown := make([]byte, len(buf), newCap)
		copy(grown, buf)
		buf = grown
	}
	return append(buf, b...)
}

func (r *Reader) finish(err error) {
	r.mu.Lock()
	r.done = true
	r.err = err
	r.mu.Unlock()
}

// signal writes one readiness byte. The write waits only when the pipe is
// full, i.e. the host has left many readiness bytes undrained; Perform
// re-checks actual buffer state rather than trusting the byte count.
func (r *Reader) signal() {
	_, _ = r.notifyW.Write([]byte{1})
}

// NotifyFD returns the read end of the notification pipe for the host's
// I/O multiplexer.
func (r *Reader) NotifyFD() uintptr { return r.notifyR.Fd() }

// Perform drains up to len(p) bytes currently buffered, compacting the
// internal buffer. It never blocks.
func (r *Reader) Perform(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Drain one stale readiness byte per Perform call so repeated polling
	// doesn't pile up signals in the pipe. The deadline makes this read
	// non-blocking: if no byte is pending yet, it times out immediately
	// instead of stalling the caller.
	var discard [1]byte
	_ = r.notifyR.SetReadDeadline(time.Now())
	_, _ = r.notifyR.Read(discard[:])
	_ = r.notifyR.SetReadDeadline(time.Time{})

	n = copy(p, r.buf)
	r.buf = r.buf[:copy(r.buf, r.buf[n:])]

	if n == 0 && r.done {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	return n, nil
}

// Done reports whether the transfer has finished (successfully or not).
func (r *Reader) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Err returns the terminal error, if any, once Done is true.
func (r *Reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close stops the background transfer and releases the notification pipe.
func (r *Reader) Close() error {
	r.cancel()
	r.wg.Wait()
	_ = r.notifyW.Close()
	return r.notifyR.Close()
}
