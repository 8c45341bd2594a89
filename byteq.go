// Package byteq is the embedded-API facade over the comparison engine:
// file/URL/buffer equality, directory and archive diffing, and a
// directory-vs-URL-map diff, each with a synchronous and a task-based
// asynchronous entry point.
package byteq

import (
	"context"
	"net/url"
	"strings"

	"github.com/ashm-dev/byteq/archivediff"
	"github.com/ashm-dev/byteq/compare"
	"github.com/ashm-dev/byteq/diffresult"
	"github.com/ashm-dev/byteq/dirdiff"
	"github.com/ashm-dev/byteq/dirurldiff"
	"github.com/ashm-dev/byteq/internal/config"
	"github.com/ashm-dev/byteq/internal/metrics"
	"github.com/ashm-dev/byteq/internal/pool"
	"github.com/ashm-dev/byteq/reader"
	"github.com/ashm-dev/byteq/reader/filereader"
	"github.com/ashm-dev/byteq/reader/httpreader"
	"github.com/ashm-dev/byteq/task"
)

// Re-exported option and result types so callers only need to import
// this one package for the embedded API.
type (
	CompareOptions = config.CompareOptions
	DirOptions     = config.DirOptions
	ArchiveOptions = config.ArchiveOptions
	DiffResult     = diffresult.Result
	Verdict        = task.Verdict
	Task           = task.Task
)

const (
	Equal     = task.VerdictEqual
	Different = task.VerdictDifferent
)

// Compare opens sourceA and sourceB — each either a filesystem path or an
// http(s) URL — and runs the full equality pipeline described in spec
// §4.4, with an optional quick-check pass first.
func Compare(ctx context.Context, sourceA, sourceB string, opts CompareOptions) (Verdict, error) {
	ra, err := openSource(ctx, sourceA, opts)
	if err != nil {
		return Different, err
	}
	defer ra.Close()
	rb, err := openSource(ctx, sourceB, opts)
	if err != nil {
		return Different, err
	}
	defer rb.Close()

	copts := compare.Options{ChunkSize: opts.ChunkSize, SizePrecheck: opts.SizePrecheck, QuickCheck: opts.QuickCheck}

	if copts.QuickCheck {
		qr, err := compare.Quick(ra, rb, copts)
		if err == nil && qr == compare.QuickDifferent {
			recordComparison("compare", Different)
			return Different, nil
		}
	}

	res, err := compare.Full(ra, rb, copts)
	if err != nil {
		return Different, err
	}
	v := verdictFrom(res)
	recordComparison("compare", v)
	return v, nil
}

// CompareDir runs the directory differencer (C5) over dirA and dirB.
func CompareDir(ctx context.Context, dirA, dirB string, opts DirOptions) (*DiffResult, error) {
	res, err := dirdiff.Compare(dirA, dirB, dirdiff.Options{
		ChunkSize:      opts.ChunkSize,
		SizePrecheck:   opts.SizePrecheck,
		QuickCheck:     opts.QuickCheck,
		FollowSymlinks: opts.FollowSymlinks,
		MaxWorkers:     opts.MaxWorkers,
		Parallel:       opts.Parallel,
	})
	if err != nil {
		return nil, err
	}
	recordComparison("compare_dir", verdictFromEqual(res.Equal()))
	return res, nil
}

// CompareArchive runs the archive differencer (C5) over pathA and pathB.
func CompareArchive(ctx context.Context, pathA, pathB string, opts ArchiveOptions) (*DiffResult, error) {
	res, err := archivediff.Compare(pathA, pathB, archivediff.Options{
		MaxDecompressedSize: opts.MaxDecompressedSize,
		MaxCompressionRatio: opts.MaxCompressionRatio,
		MaxEntries:          opts.MaxEntries,
		MaxEntryNameLength:  opts.MaxEntryNameLength,
		HashCompare:         opts.HashCompare,
	})
	if err != nil {
		return nil, err
	}
	recordComparison("compare_archive", verdictFromEqual(res.Equal()))
	return res, nil
}

// CompareDirURLs runs the directory-vs-URL-map differencer over dir and
// urlMap.
func CompareDirURLs(ctx context.Context, dir string, urlMap map[string]string, opts DirOptions) (*DiffResult, error) {
	res, err := dirurldiff.Compare(ctx, dir, urlMap, dirurldiff.Options{
		ChunkSize:      opts.ChunkSize,
		SizePrecheck:   opts.SizePrecheck,
		QuickCheck:     opts.QuickCheck,
		FollowSymlinks: opts.FollowSymlinks,
		HTTP: httpreader.Options{
			Proxy:           opts.Proxy,
			Headers:         opts.Headers,
			Timeout:         opts.Timeout,
			FollowRedirects: opts.FollowRedirects,
			VerifySSL:       opts.VerifySSL,
			AllowPrivate:    opts.AllowPrivate,
		},
	})
	if err != nil {
		return nil, err
	}
	recordComparison("compare_dir_urls", verdictFromEqual(res.Equal()))
	return res, nil
}

// CompareBuffers compares two in-memory buffers directly; there is no
// reader indirection to amortise, so it bypasses compare.Full entirely.
func CompareBuffers(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CompareStart submits a file/URL compare to the global worker pool and
// returns immediately with a Task the host can poll via NotifyFD.
func CompareStart(ctx context.Context, sourceA, sourceB string, opts CompareOptions) (*Task, error) {
	t, err := task.New(task.KindCompare)
	if err != nil {
		return nil, err
	}
	pool.Global().Submit(func() {
		t.RunVerdict(func() (Verdict, error) {
			return Compare(ctx, sourceA, sourceB, opts)
		})
	})
	return t, nil
}

// CompareDirStart submits a directory compare to the global worker pool.
func CompareDirStart(ctx context.Context, dirA, dirB string, opts DirOptions) (*Task, error) {
	t, err := task.New(task.KindCompareDir)
	if err != nil {
		return nil, err
	}
	pool.Global().Submit(func() {
		t.RunDiff(func() (task.DiffResulter, error) {
			return CompareDir(ctx, dirA, dirB, opts)
		})
	})
	return t, nil
}

// CompareArchiveStart submits an archive compare to the global worker pool.
func CompareArchiveStart(ctx context.Context, pathA, pathB string, opts ArchiveOptions) (*Task, error) {
	t, err := task.New(task.KindCompareArchive)
	if err != nil {
		return nil, err
	}
	pool.Global().Submit(func() {
		t.RunDiff(func() (task.DiffResulter, error) {
			return CompareArchive(ctx, pathA, pathB, opts)
		})
	})
	return t, nil
}

// CompareDirURLsStart submits a directory-vs-URL-map compare to the
// global worker pool.
func CompareDirURLsStart(ctx context.Context, dir string, urlMap map[string]string, opts DirOptions) (*Task, error) {
	t, err := task.New(task.KindCompareDirURLs)
	if err != nil {
		return nil, err
	}
	pool.Global().Submit(func() {
		t.RunDiff(func() (task.DiffResulter, error) {
			return CompareDirURLs(ctx, dir, urlMap, opts)
		})
	})
	return t, nil
}

// openSource opens src as an HTTP(S) reader when it parses as one of
// those schemes, otherwise as a local file.
func openSource(ctx context.Context, src string, opts CompareOptions) (reader.Reader, error) {
	if isHTTPURL(src) {
		return httpreader.Open(ctx, src, httpreader.Options{
			Proxy:           opts.Proxy,
			Headers:         opts.Headers,
			Timeout:         opts.Timeout,
			FollowRedirects: opts.FollowRedirects,
			VerifySSL:       opts.VerifySSL,
			AllowPrivate:    opts.AllowPrivate,
		})
	}
	return filereader.Open(src)
}

func isHTTPURL(src string) bool {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return false
	}
	u, err := url.Parse(src)
	return err == nil && u.Host != ""
}

func verdictFrom(r compare.Result) Verdict {
	if r == compare.Equal {
		return Equal
	}
	return Different
}

func verdictFromEqual(equal bool) Verdict {
	if equal {
		return Equal
	}
	return Different
}

func recordComparison(kind string, v Verdict) {
	outcome := "different"
	if v == Equal {
		outcome = "equal"
	}
	metrics.ComparisonsTotal.WithLabelValues(kind, outcome).Inc()
}
