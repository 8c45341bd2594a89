// Package archivediff implements the archive differencer (part of C5):
// streamed entry extraction over archive/tar and archive/zip with bomb
// guards, and two comparison strategies — materialised (full entries,
// sorted-merge, memcmp) and hashed (two independent 64-bit FNV hashes
// per entry, O(entry count) memory).
package archivediff

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"hash/fnv"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/diffresult"
)

// Options configures an archive compare's bomb guards and strategy
// selection.
type Options struct {
	MaxDecompressedSize int64
	MaxCompressionRatio float64
	MaxEntries          int
	MaxEntryNameLength  int
	// HashCompare selects the O(entry count) hashed strategy over the
	// materialised merge (superset field, spec §9 Open Question).
	HashCompare bool
}

const (
	defaultMaxDecompressedSize = 1 << 30 // 1 GiB
	defaultMaxCompressionRatio = 200.0
	defaultMaxEntries          = 100_000
	defaultMaxEntryNameLength  = 4096
)

func (o Options) withDefaults() Options {
	if o.MaxDecompressedSize <= 0 {
		o.MaxDecompressedSize = defaultMaxDecompressedSize
	}
	if o.MaxCompressionRatio <= 0 {
		o.MaxCompressionRatio = defaultMaxCompressionRatio
	}
	if o.MaxEntries <= 0 {
		o.MaxEntries = defaultMaxEntries
	}
	if o.MaxEntryNameLength <= 0 {
		o.MaxEntryNameLength = defaultMaxEntryNameLength
	}
	return o
}

// entry is one sanitised, extracted archive member.
type entry struct {
	name string
	data []byte
	h1   uint64
	h2   uint64
}

// Compare opens pathA and pathB as archives of the same detected format,
// extracts their entries under the configured bomb guards, and compares
// them with the selected strategy.
func Compare(pathA, pathB string, opts Options) (*diffresult.Result, error) {
	opts = opts.withDefaults()

	entriesA, err := extract(pathA, opts)
	if err != nil {
		return nil, err
	}
	entriesB, err := extract(pathB, opts)
	if err != nil {
		return nil, err
	}

	sort.Slice(entriesA, func(i, j int) bool { return entriesA[i].name < entriesA[j].name })
	sort.Slice(entriesB, func(i, j int) bool { return entriesB[i].name < entriesB[j].name })

	result := diffresult.New()
	i, j := 0, 0
	for i < len(entriesA) && j < len(entriesB) {
		a, b := entriesA[i], entriesB[j]
		switch {
		case a.name < b.name:
			result.OnlyLeft = append(result.OnlyLeft, a.name)
			i++
		case a.name > b.name:
			result.OnlyRight = append(result.OnlyRight, b.name)
			j++
		default:
			if !entriesEqual(a, b, opts.HashCompare) {
				result.Diff[a.name] = diffresult.ContentMismatch
			}
			i++
			j++
		}
	}
	for ; i < len(entriesA); i++ {
		result.OnlyLeft = append(result.OnlyLeft, entriesA[i].name)
	}
	for ; j < len(entriesB); j++ {
		result.OnlyRight = append(result.OnlyRight, entriesB[j].name)
	}

	return result, nil
}

func entriesEqual(a, b entry, hashCompare bool) bool {
	if hashCompare {
		return a.h1 == b.h1 && a.h2 == b.h2
	}
	return bytes.Equal(a.data, b.data)
}

// extract detects the archive format from its extension and streams
// every regular-file entry through the bomb guards, sanitising names
// and hashing or retaining content depending on the strategy.
func extract(path_ string, opts Options) ([]entry, error) {
	f, err := os.Open(path_)
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "open archive "+path_)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path_, ".zip"):
		return extractZip(path_, opts)
	case strings.HasSuffix(path_, ".tar.gz") || strings.HasSuffix(path_, ".tgz"):
		cr := &countingReader{r: f}
		gr, err := gzip.NewReader(cr)
		if err != nil {
			return nil, byteqerr.Wrap(byteqerr.CodePolicy, err, "gzip open "+path_)
		}
		defer gr.Close()
		return extractTar(tar.NewReader(gr), opts, cr)
	case strings.HasSuffix(path_, ".tar"):
		cr := &countingReader{r: f}
		return extractTar(tar.NewReader(cr), opts, cr)
	default:
		return nil, byteqerr.New(byteqerr.CodePolicy, "unrecognised archive format: "+path_)
	}
}

// countingReader tracks bytes read from the underlying compressed
// stream, giving extractTar the "compressed bytes consumed so far"
// figure extractZip already has from zip.File.CompressedSize64.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func extractZip(path_ string, opts Options) ([]entry, error) {
	zr, err := zip.OpenReader(path_)
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodePolicy, err, "zip open "+path_)
	}
	defer zr.Close()

	var entries []entry
	var totalOut, totalIn int64

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if len(zf.Name) > opts.MaxEntryNameLength {
			return nil, byteqerr.New(byteqerr.CodePolicy, "archive entry name exceeds length limit: "+path_)
		}
		name, ok := sanitiseEntryName(zf.Name, opts)
		if !ok {
			continue
		}
		if len(entries) >= opts.MaxEntries {
			return nil, byteqerr.New(byteqerr.CodePolicy, "archive entry count exceeds limit: "+path_)
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, byteqerr.Wrap(byteqerr.CodeRead, err, "zip entry open "+name)
		}
		e, n, err := readEntry(name, rc, opts, totalOut)
		rc.Close()
		if err != nil {
			return nil, err
		}
		totalOut += n
		totalIn += int64(zf.CompressedSize64)
		if err := checkRatio(totalIn, totalOut, opts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func extractTar(tr *tar.Reader, opts Options, cr *countingReader) ([]entry, error) {
	var entries []entry
	var totalOut int64

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, byteqerr.Wrap(byteqerr.CodeRead, err, "tar read")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if len(hdr.Name) > opts.MaxEntryNameLength {
			return nil, byteqerr.New(byteqerr.CodePolicy, "archive entry name exceeds length limit")
		}
		name, ok := sanitiseEntryName(hdr.Name, opts)
		if !ok {
			continue
		}
		if len(entries) >= opts.MaxEntries {
			return nil, byteqerr.New(byteqerr.CodePolicy, "archive entry count exceeds limit")
		}

		e, n, err := readEntry(name, tr, opts, totalOut)
		if err != nil {
			return nil, err
		}
		totalOut += n
		if err := checkRatio(cr.n, totalOut, opts); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readEntry streams an entry under the decompressed-size guard, computing
// its 64-bit FNV-1 and FNV-1a hashes. The entry's bytes are retained only
// for the materialised strategy; the hashed strategy keeps the hashes
// alone.
func readEntry(name string, r io.Reader, opts Options, outSoFar int64) (entry, int64, error) {
	h1 := fnv.New64()
	h2 := fnv.New64a()

	var buf bytes.Buffer
	var sink io.Writer = &buf
	if opts.HashCompare {
		sink = io.Discard
	}
	limited := io.LimitReader(r, opts.MaxDecompressedSize-outSoFar+1)
	n, err := io.Copy(io.MultiWriter(sink, h1, h2), limited)
	if err != nil {
		return entry{}, 0, byteqerr.Wrap(byteqerr.CodeRead, err, "extract "+name)
	}
	if outSoFar+n > opts.MaxDecompressedSize {
		return entry{}, 0, byteqerr.New(byteqerr.CodePolicy, "decompressed size exceeds limit: "+name)
	}

	return entry{
		name: name,
		data: buf.Bytes(),
		h1:   h1.Sum64(),
		h2:   h2.Sum64(),
	}, n, nil
}

func checkRatio(compressedSoFar, decompressedSoFar int64, opts Options) error {
	if compressedSoFar <= 0 {
		return nil
	}
	ratio := float64(decompressedSoFar) / float64(compressedSoFar)
	if ratio > opts.MaxCompressionRatio {
		return byteqerr.New(byteqerr.CodePolicy, "compression ratio exceeds limit")
	}
	return nil
}

// sanitiseEntryName rejects absolute paths, any ".." component, and
// empty-after-normalisation names, per spec §4.5.
func sanitiseEntryName(name string, opts Options) (string, bool) {
	if len(name) > opts.MaxEntryNameLength {
		return "", false
	}
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == "." || clean == "" {
		return "", false
	}
	if path.IsAbs(clean) {
		return "", false
	}
	for _, part := range strings.Split(clean, "/") {
		if part == ".." {
			return "", false
		}
	}
	return clean, true
}
