// Package pathlist implements the arena-backed ordered path list from
// spec §3: paths are packed into 64 KiB blocks chained in a slice (Go's
// safe stand-in for the spec's singly-linked block chain), with a
// separate growable index of (block, offset, length) triples mirroring
// the spec's "separately allocated growable pointer table".
package pathlist

import "sort"

const blockSize = 64 * 1024

type entry struct {
	block  int
	offset int
	length int
}

// List is a transient, append-only, sortable sequence of relative paths.
type List struct {
	blocks  [][]byte
	entries []entry
}

// New returns an empty List.
func New() *List {
	return &List{blocks: [][]byte{make([]byte, 0, blockSize)}}
}

// Add appends path to the list, allocating a new 64 KiB block when the
// current one doesn't have room.
func (l *List) Add(path string) {
	cur := len(l.blocks) - 1
	if len(l.blocks[cur])+len(path) > blockSize && len(l.blocks[cur]) > 0 {
		l.blocks = append(l.blocks, make([]byte, 0, blockSize))
		cur++
	}
	if len(path) > blockSize {
		// Oversized single path: give it its own dedicated block.
		l.blocks = append(l.blocks, []byte(path))
		l.entries = append(l.entries, entry{block: len(l.blocks) - 1, offset: 0, length: len(path)})
		l.blocks = append(l.blocks, make([]byte, 0, blockSize))
		return
	}
	off := len(l.blocks[cur])
	l.blocks[cur] = append(l.blocks[cur], path...)
	l.entries = append(l.entries, entry{block: cur, offset: off, length: len(path)})
}

// Len returns the number of paths added.
func (l *List) Len() int { return len(l.entries) }

func (l *List) at(i int) string {
	e := l.entries[i]
	return string(l.blocks[e.block][e.offset : e.offset+e.length])
}

// Sort orders the list bytewise, deterministically, as the spec requires.
func (l *List) Sort() {
	sort.Slice(l.entries, func(i, j int) bool {
		return l.at(i) < l.at(j)
	})
}

// Strings materialises the list as a plain []string in its current
// order, which is bytewise-sorted once Sort has been called.
func (l *List) Strings() []string {
	out := make([]string, l.Len())
	for i := range out {
		out[i] = l.at(i)
	}
	return out
}
