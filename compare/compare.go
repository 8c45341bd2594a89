// Package compare implements the equality engine (C4): a chunked
// sequential memcmp pipeline with an optional size pre-check and an
// optional sampled quick-check.
package compare

import (
	"bytes"
	"io"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/reader"
)

// DefaultChunkSize is used when Options.ChunkSize is zero or negative.
const DefaultChunkSize = 64 * 1024

// Options configures a comparison pass.
type Options struct {
	ChunkSize    int
	SizePrecheck bool
	QuickCheck   bool
}

// Result is the verdict of a Full comparison.
type Result int

const (
	Equal Result = iota
	Different
)

// QuickResult is the verdict of a Quick comparison.
type QuickResult int

const (
	// SamplesMatch means every sampled chunk matched; the caller must
	// still run Full to prove equality — quick-check never proves it.
	// Values start at 1 so no QuickResult shares a value with Result's
	// Equal.
	SamplesMatch QuickResult = iota + 1
	QuickDifferent
	// NotApplicable means the readers don't support the precondition
	// (known size + seek) or a seek/read failed while sampling; Quick
	// seeks both readers back to 0 (best effort) so the caller can fall
	// back to Full from position 0.
	NotApplicable
)

func chunkSize(opts Options) int {
	if opts.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return opts.ChunkSize
}

// Full performs the chunked sequential comparison described in spec
// §4.4: optional size precheck, then read-compare chunk_size bytes at a
// time until both sides report EOF or a mismatch is found.
func Full(a, b reader.Reader, opts Options) (Result, error) {
	if opts.SizePrecheck {
		sa, okA := a.Size()
		sb, okB := b.Size()
		if okA && okB {
			if sa != sb {
				return Different, nil
			}
			if sa == 0 {
				return Equal, nil
			}
		}
	}

	size := chunkSize(opts)
	bufA := make([]byte, size)
	bufB := make([]byte, size)

	for {
		na, errA := readFull(a, bufA)
		if errA != nil {
			return Equal, errA
		}
		nb, errB := readFull(b, bufB)
		if errB != nil {
			return Equal, errB
		}

		if na != nb {
			return Different, nil
		}
		if na == 0 {
			return Equal, nil
		}
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return Different, nil
		}
	}
}

// readFull reads up to len(p) bytes, treating io.EOF with n==0 as a
// clean 0-byte read (never an error) so the Full loop's "both zero ⇒
// EQUAL" check is reachable; any other error is wrapped as CodeRead.
func readFull(r reader.Reader, p []byte) (int, error) {
	n, err := r.Read(p)
	if err != nil && err != io.EOF {
		return n, byteqerr.Wrap(byteqerr.CodeRead, err, "compare read")
	}
	return n, nil
}

// Quick samples up to three offsets (start, last full chunk, midpoint)
// and compares one chunk at each. It never returns Equal: only
// SamplesMatch, QuickDifferent, or NotApplicable. On SamplesMatch both
// readers are left positioned at 0, as the spec requires; before
// returning NotApplicable it also tries to seek both back to 0.
func Quick(a, b reader.Reader, opts Options) (QuickResult, error) {
	sa, okA := a.Size()
	sb, okB := b.Size()
	seekA, okSeekA := reader.Seekable(a)
	seekB, okSeekB := reader.Seekable(b)
	if !okA || !okB || !okSeekA || !okSeekB {
		return NotApplicable, nil
	}
	if sa != sb {
		return QuickDifferent, nil
	}
	if sa == 0 {
		return SamplesMatch, restorePositions(seekA, seekB)
	}

	size := int64(chunkSize(opts))
	offsets := []int64{0}
	if sa > size {
		offsets = append(offsets, sa-size)
	}
	if sa > 2*size {
		offsets = append(offsets, sa/2)
	}

	bufA := make([]byte, size)
	bufB := make([]byte, size)

	notApplicable := func() (QuickResult, error) {
		_ = restorePositions(seekA, seekB)
		return NotApplicable, nil
	}

	for _, off := range offsets {
		if err := seekA.Seek(off); err != nil {
			return notApplicable()
		}
		if err := seekB.Seek(off); err != nil {
			return notApplicable()
		}

		na, errA := a.Read(bufA)
		if errA != nil && errA != io.EOF {
			return notApplicable()
		}
		nb, errB := b.Read(bufB)
		if errB != nil && errB != io.EOF {
			return notApplicable()
		}
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return QuickDifferent, nil
		}
	}

	if err := restorePositions(seekA, seekB); err != nil {
		return NotApplicable, nil
	}
	return SamplesMatch, nil
}

func restorePositions(a, b reader.Seeker) error {
	if err := a.Seek(0); err != nil {
		return err
	}
	return b.Seek(0)
}
