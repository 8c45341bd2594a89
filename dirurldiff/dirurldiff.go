// Package dirurldiff implements the directory-vs-URL-map differencer
// (NEW; named but not detailed in spec.md §4.5/§6 as compare_dir_urls):
// walks a local tree, merges its sorted paths against the sorted keys
// of a caller-supplied relative-path → URL map, and runs the standard
// size-precheck → quick-check → full-compare pipeline against the
// common entries.
package dirurldiff

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/ashm-dev/byteq/compare"
	"github.com/ashm-dev/byteq/diffresult"
	"github.com/ashm-dev/byteq/internal/walk"
	"github.com/ashm-dev/byteq/reader/filereader"
	"github.com/ashm-dev/byteq/reader/httpreader"
)

// Options configures the local walk, the comparison pipeline, and the
// HTTP reader used for each remote side.
type Options struct {
	ChunkSize      int
	SizePrecheck   bool
	QuickCheck     bool
	FollowSymlinks bool
	HTTP           httpreader.Options
}

// Compare walks dir, merges its file list against the sorted keys of
// urlMap, and compares every common relative path between the local
// file and its mapped URL.
func Compare(ctx context.Context, dir string, urlMap map[string]string, opts Options) (*diffresult.Result, error) {
	walked, err := walk.Walk(dir, walk.Options{FollowSymlinks: opts.FollowSymlinks})
	if err != nil {
		return nil, err
	}

	urlKeys := make([]string, 0, len(urlMap))
	for k := range urlMap {
		urlKeys = append(urlKeys, k)
	}
	sort.Strings(urlKeys)

	result := diffresult.New()
	result.Errors = append(result.Errors, walked.Errors...)

	i, j := 0, 0
	left := walked.Files
	for i < len(left) && j < len(urlKeys) {
		switch {
		case left[i] < urlKeys[j]:
			result.OnlyLeft = append(result.OnlyLeft, left[i])
			i++
		case left[i] > urlKeys[j]:
			result.OnlyRight = append(result.OnlyRight, urlKeys[j])
			j++
		default:
			rel := left[i]
			reason, equal, cerr := compareOne(ctx, filepath.Join(dir, rel), urlMap[rel], opts)
			if cerr != nil {
				result.Diff[rel] = diffresult.ReadError
			} else if !equal {
				result.Diff[rel] = reason
			}
			i++
			j++
		}
	}
	for ; i < len(left); i++ {
		result.OnlyLeft = append(result.OnlyLeft, left[i])
	}
	for ; j < len(urlKeys); j++ {
		result.OnlyRight = append(result.OnlyRight, urlKeys[j])
	}

	return result, nil
}

func compareOne(ctx context.Context, localPath, url string, opts Options) (diffresult.Reason, bool, error) {
	lr, err := filereader.Open(localPath)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	defer lr.Close()

	rr, err := httpreader.Open(ctx, url, opts.HTTP)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	defer rr.Close()

	copts := compare.Options{ChunkSize: opts.ChunkSize, SizePrecheck: opts.SizePrecheck, QuickCheck: opts.QuickCheck}

	if copts.QuickCheck {
		qr, err := compare.Quick(lr, rr, copts)
		if err == nil && qr == compare.QuickDifferent {
			return sizeOrContentMismatch(lr, rr), false, nil
		}
	}

	res, err := compare.Full(lr, rr, copts)
	if err != nil {
		return diffresult.ReadError, false, err
	}
	if res == compare.Different {
		return sizeOrContentMismatch(lr, rr), false, nil
	}
	return "", true, nil
}

func sizeOrContentMismatch(a, b interface{ Size() (int64, bool) }) diffresult.Reason {
	sa, okA := a.Size()
	sb, okB := b.Size()
	if okA && okB && sa != sb {
		return diffresult.SizeMismatch
	}
	return diffresult.ContentMismatch
}
