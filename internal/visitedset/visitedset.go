// Package visitedset implements the (device, inode) set used to detect
// symlink cycles during a single directory walk.
package visitedset

// Key identifies a filesystem object by device and inode, the same pair
// the spec uses for both symlink-loop detection and the same-file
// short-circuit.
type Key struct {
	Dev uint64
	Ino uint64
}

// Set is a hash set of Key backed by Go's built-in map rather than a
// hand-rolled probing table; its growth follows the map runtime's own
// policy, not a fixed 75% load threshold.
type Set struct {
	m map[Key]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{m: make(map[Key]struct{})}
}

// Insert records k; it is a no-op if already present.
func (s *Set) Insert(k Key) {
	s.m[k] = struct{}{}
}

// Contains reports whether k has been seen.
func (s *Set) Contains(k Key) bool {
	_, ok := s.m[k]
	return ok
}

// Len reports how many distinct keys have been inserted.
func (s *Set) Len() int { return len(s.m) }
