package reader

import (
	"bytes"
	"io"
)

// Mem wraps an in-memory byte slice as a Reader+Seeker, mirroring the
// teacher's lib/readers family of small io.Reader-composing wrappers
// (RepeatableReader, FakeSeeker) scaled down to the one case byteq
// actually needs: feeding CompareBuffers-style blobs through the same
// chunked-compare pipeline used for files and HTTP bodies.
type Mem struct {
	name string
	r    *bytes.Reader
	data []byte
}

// NewMem builds a Reader over data, named for diagnostics.
func NewMem(name string, data []byte) *Mem {
	return &Mem{name: name, r: bytes.NewReader(data), data: data}
}

func (m *Mem) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	if err == io.EOF && n == 0 {
		return 0, io.EOF
	}
	return n, err
}

// Close is a no-op; Mem owns no native resources.
func (m *Mem) Close() error { return nil }

// Size always reports the known length of the backing slice.
func (m *Mem) Size() (int64, bool) { return int64(len(m.data)), true }

// Seek repositions the reader; offset must satisfy 0 <= offset <= len(data).
func (m *Mem) Seek(offset int64) error {
	_, err := m.r.Seek(offset, io.SeekStart)
	return err
}

// SourceName returns the diagnostic name passed to NewMem.
func (m *Mem) SourceName() string { return m.name }

var (
	_ Reader = (*Mem)(nil)
	_ Seeker = (*Mem)(nil)
	_ Named  = (*Mem)(nil)
)
