// Package walk implements the parallel-capable recursive directory walk
// (part of C5): depth-bounded traversal with symlink-loop detection via
// an (device, inode) visited set, and non-fatal collection of
// permission errors into a side list.
package walk

import (
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/internal/pathlist"
	"github.com/ashm-dev/byteq/internal/visitedset"
)

// MaxDepth bounds recursion, guarding against pathological trees and
// symlink cycles that evade the loop check.
const MaxDepth = 256

// Options configures a single walk.
type Options struct {
	FollowSymlinks bool
}

// Result is the sorted list of relative regular-file paths found, plus
// any permission errors encountered along the way.
type Result struct {
	Files  []string
	Errors []string // relative paths that failed to stat/open with EACCES/EPERM
}

// Walk recurses from root, returning every regular file's path relative
// to root, sorted bytewise.
func Walk(root string, opts Options) (*Result, error) {
	files := pathlist.New()
	res := &Result{}
	visited := visitedset.New()

	rootInfo, err := os.Lstat(root)
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "stat root "+root)
	}
	if key, ok := devIno(rootInfo); ok && opts.FollowSymlinks {
		visited.Insert(key)
	}

	if err := walkDir(root, "", 0, opts, visited, files, res); err != nil {
		return nil, err
	}

	files.Sort()
	res.Files = files.Strings()
	sort.Strings(res.Errors)
	return res, nil
}

func walkDir(absDir, relDir string, depth int, opts Options, visited *visitedset.Set, files *pathlist.List, res *Result) error {
	if depth > MaxDepth {
		return byteqerr.New(byteqerr.CodePolicy, "max directory depth exceeded at "+relDir)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsPermission(err) {
			res.Errors = append(res.Errors, relDir)
			return nil
		}
		return byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "readdir "+absDir)
	}

	for _, entry := range entries {
		name := normalizePathComponent(entry.Name())
		absChild := filepath.Join(absDir, entry.Name())
		relChild := name
		if relDir != "" {
			relChild = relDir + "/" + name
		}

		info, statErr := os.Lstat(absChild)
		if statErr != nil {
			if os.IsPermission(statErr) {
				res.Errors = append(res.Errors, relChild)
				continue
			}
			return byteqerr.Wrap(byteqerr.CodeOpenFailed, statErr, "stat "+absChild)
		}

		mode := info.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			if !opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(absChild) // follows the link
			if err != nil {
				if os.IsPermission(err) {
					res.Errors = append(res.Errors, relChild)
					continue
				}
				continue // broken symlink: skip silently
			}
			if target.IsDir() {
				if key, ok := devIno(target); ok {
					if visited.Contains(key) {
						continue // cycle: skip silently
					}
					visited.Insert(key)
				}
				if err := walkDir(absChild, relChild, depth+1, opts, visited, files, res); err != nil {
					return err
				}
			} else if target.Mode().IsRegular() {
				files.Add(relChild)
			}

		case mode.IsDir():
			if err := walkDir(absChild, relChild, depth+1, opts, visited, files, res); err != nil {
				return err
			}

		case mode.IsRegular():
			files.Add(relChild)
		}
	}

	return nil
}

// normalizePathComponent applies Unicode NFC normalisation to a single
// path component so the same logical filename sorts and compares
// identically across platforms that store differently-normalised UTF-8
// (notably macOS's HFS+/APFS NFD convention) — the teacher's backend/local
// does the same normalisation for the same reason (see its use of
// golang.org/x/text/unicode/norm).
func normalizePathComponent(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
