// Package dirdiff implements the directory differencer (part of C5):
// parallel tree walks, a sorted-merge set diff, and per-common-path
// comparison tasks dispatched either inline or through an ad-hoc worker
// pool.
package dirdiff

import (
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/compare"
	"github.com/ashm-dev/byteq/diffresult"
	"github.com/ashm-dev/byteq/internal/pool"
	"github.com/ashm-dev/byteq/internal/walk"
	"github.com/ashm-dev/byteq/reader/filereader"
)

// Options configures a directory compare.
type Options struct {
	ChunkSize      int
	SizePrecheck   bool
	QuickCheck     bool
	FollowSymlinks bool
	// MaxWorkers sizes the ad-hoc pool when Parallel is set; <= 0 uses
	// internal/pool's own default.
	MaxWorkers int
	Parallel   bool
}

func (o Options) compareOpts() compare.Options {
	return compare.Options{ChunkSize: o.ChunkSize, SizePrecheck: o.SizePrecheck, QuickCheck: o.QuickCheck}
}

// Compare walks dirA and dirB, sorted-merges their regular-file paths,
// and compares every common path, following spec §4.5 exactly: a
// same-root canonicalisation short-circuit, then emit only_left/
// only_right from the merge and a diff entry for any common path that
// doesn't compare equal.
func Compare(dirA, dirB string, opts Options) (*diffresult.Result, error) {
	if sameRoot(dirA, dirB) {
		return diffresult.New(), nil
	}

	var resA, resB *walk.Result
	g := new(errgroup.Group)
	g.Go(func() error {
		r, err := walk.Walk(dirA, walk.Options{FollowSymlinks: opts.FollowSymlinks})
		if err != nil {
			return err
		}
		resA = r
		return nil
	})
	g.Go(func() error {
		r, err := walk.Walk(dirB, walk.Options{FollowSymlinks: opts.FollowSymlinks})
		if err != nil {
			return err
		}
		resB = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := diffresult.New()
	result.Errors = append(result.Errors, resA.Errors...)
	result.Errors = append(result.Errors, resB.Errors...)

	common := mergeSorted(resA.Files, resB.Files, result)

	if len(common) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	record := func(relPath string, reason diffresult.Reason) {
		mu.Lock()
		result.Diff[relPath] = reason
		mu.Unlock()
	}

	compareOne := func(relPath string) {
		pathA := filepath.Join(dirA, relPath)
		pathB := filepath.Join(dirB, relPath)
		reason, ok, err := compareFiles(pathA, pathB, opts)
		if err != nil {
			record(relPath, diffresult.ReadError)
			return
		}
		if !ok {
			record(relPath, reason)
		}
	}

	if !opts.Parallel {
		for _, p := range common {
			compareOne(p)
		}
		return result, nil
	}

	p := pool.New(opts.MaxWorkers)
	for _, relPath := range common {
		relPath := relPath
		p.Submit(func() { compareOne(relPath) })
	}
	p.Close()
	if lp := p.LastPanic(); lp != nil {
		return nil, byteqerr.New(byteqerr.CodeRead, "directory compare worker panicked")
	}
	return result, nil
}

// sameRoot canonicalises both paths and reports whether they name the
// same file, short-circuiting the whole walk per spec §4.5.
func sameRoot(a, b string) bool {
	ca, errA := filepath.EvalSymlinks(a)
	cb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return false
	}
	return ca == cb
}

// mergeSorted performs the bitwise sorted-merge pass: both Files lists
// are already sorted by walk.Walk. Paths unique to a side are appended
// to result.OnlyLeft/OnlyRight; paths present on both sides are
// returned for comparison.
func mergeSorted(left, right []string, result *diffresult.Result) []string {
	var common []string
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			result.OnlyLeft = append(result.OnlyLeft, left[i])
			i++
		case left[i] > right[j]:
			result.OnlyRight = append(result.OnlyRight, right[j])
			j++
		default:
			common = append(common, left[i])
			i++
			j++
		}
	}
	result.OnlyLeft = append(result.OnlyLeft, left[i:]...)
	result.OnlyRight = append(result.OnlyRight, right[j:]...)
	return common
}

// compareFiles opens both sides, applies the per-pair (device, inode)
// short-circuit, and runs the standard equality pipeline, optionally
// preceded by a quick-check.
func compareFiles(pathA, pathB string, opts Options) (diffresult.Reason, bool, error) {
	if sameFile(pathA, pathB) {
		return "", true, nil
	}

	ra, err := filereader.Open(pathA)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	defer ra.Close()
	rb, err := filereader.Open(pathB)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	defer rb.Close()

	copts := opts.compareOpts()

	if copts.QuickCheck {
		qr, err := compare.Quick(ra, rb, copts)
		if err == nil && qr == compare.QuickDifferent {
			return reasonFromSizes(ra, rb), false, nil
		}
	}

	res, err := compare.Full(ra, rb, copts)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	if res == compare.Different {
		return reasonFromSizes(ra, rb), false, nil
	}
	return "", true, nil
}

func reasonFromSizes(a, b interface{ Size() (int64, bool) }) diffresult.Reason {
	sa, okA := a.Size()
	sb, okB := b.Size()
	if okA && okB && sa != sb {
		return diffresult.SizeMismatch
	}
	return diffresult.ContentMismatch
}

func sameFile(pathA, pathB string) bool {
	ia, errA := os.Stat(pathA)
	ib, errB := os.Stat(pathB)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
