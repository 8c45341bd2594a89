// Package reader defines the polymorphic byte-source abstraction that
// byteq's file, URL and directory comparisons are built on: random-access
// and sequential readers over files and HTTP(S) resources. The archive
// differencer reads archive members directly and does not use it.
package reader

// Reader is the minimal capability every byte source supports.
//
// Read behaves like io.Reader: after EOF it returns (0, io.EOF) and must
// continue to do so on every subsequent call. Close releases all native
// resources and is not safe to call twice.
type Reader interface {
	Read(p []byte) (n int, err error)
	Close() error

	// Size returns the exact total byte length and true when known, or
	// (0, false) when the length cannot be determined up front (e.g. a
	// chunked HTTP transfer).
	Size() (size int64, known bool)
}

// Seeker is an optional capability: a Reader that also supports
// Seek(0 <= offset <= size). Callers must type-assert for it and fall
// back to algorithms that never require random access when absent.
type Seeker interface {
	Seek(offset int64) error
}

// Named is an optional capability exposing a diagnostic identifier; it
// carries no semantics of its own.
type Named interface {
	SourceName() string
}

// Seekable reports whether r also implements Seeker, returning the
// narrowed interface for convenience.
func Seekable(r Reader) (Seeker, bool) {
	s, ok := r.(Seeker)
	return s, ok
}

// NameOf returns r's diagnostic name, or "" if it doesn't implement Named.
func NameOf(r Reader) string {
	if n, ok := r.(Named); ok {
		return n.SourceName()
	}
	return ""
}
