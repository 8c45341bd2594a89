// Package filereader implements the memory-mapped local-file Reader (C2):
// maps the whole file for random access where possible, falls back to
// positional reads otherwise, and treats a shrinking file size as a read
// error rather than trusting Go to survive a hardware fault on a
// truncated mapping — see DESIGN.md for why this substitutes for the
// spec's SIGBUS/longjmp fault-isolation mechanism.
package filereader

import (
	"io"
	"os"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/internal/logger"
)

// Reader is a Reader+Seeker over a local regular file.
type Reader struct {
	path string
	f    *os.File
	size int64

	mapped []byte // non-nil when the mapping succeeded
	pos    int64
	closed bool
}

// Open opens path for comparison. Non-regular files (directories,
// devices, pipes, sockets) are rejected with CodePolicy.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, byteqerr.Wrap(byteqerr.CodeNotFound, err, "open "+path)
		}
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "open "+path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "stat "+path)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, byteqerr.New(byteqerr.CodePolicy, "not a regular file: "+path)
	}

	r := &Reader{path: path, f: f, size: info.Size()}

	if r.size > 0 {
		if mapped, mErr := mmapFile(f, r.size); mErr == nil {
			r.mapped = mapped
			adviseSequential(mapped)
		} else {
			logger.Debugf("filereader: mmap fallback for %s: %v", path, mErr)
		}
	}

	return r, nil
}

// Read copies up to len(p) bytes starting at the reader's current
// position. On the mapped path it re-stats the file before every read so
// a shrink caused by external truncation surfaces as a read error
// instead of risking a fault inside a stale mapping.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, byteqerr.New(byteqerr.CodeRead, "read after close")
	}
	if r.mapped != nil {
		if info, err := r.f.Stat(); err != nil || info.Size() < r.size {
			return 0, byteqerr.New(byteqerr.CodeRead, "file truncated during mapped read: "+r.path)
		}
		if r.pos >= int64(len(r.mapped)) {
			return 0, io.EOF
		}
		n := copy(p, r.mapped[r.pos:])
		r.pos += int64(n)
		return n, nil
	}

	n, err := r.f.ReadAt(p, r.pos)
	r.pos += int64(n)
	if err != nil {
		if err == io.EOF {
			return n, io.EOF
		}
		return n, byteqerr.Wrap(byteqerr.CodeRead, err, "read "+r.path)
	}
	return n, nil
}

// Size reports the file's length as observed at Open time.
func (r *Reader) Size() (int64, bool) { return r.size, true }

// Seek repositions the reader; valid for 0 <= offset <= size.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 || offset > r.size {
		return byteqerr.New(byteqerr.CodePolicy, "seek out of range")
	}
	r.pos = offset
	return nil
}

// SourceName returns the filesystem path, for diagnostics.
func (r *Reader) SourceName() string { return r.path }

// Close releases the mapping (if any) and the underlying file handle.
// Double-close is the caller's responsibility to avoid, per the Reader
// contract; Close itself tolerates being called once cleanly.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var err error
	if r.mapped != nil {
		err = munmapFile(r.mapped)
		r.mapped = nil
	}
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}
