//go:build linux || darwin || freebsd || netbsd || openbsd

package walk

import (
	"os"
	"syscall"

	"github.com/ashm-dev/byteq/internal/visitedset"
)

// devIno extracts the (device, inode) pair the spec uses for both
// symlink-loop detection and the same-file short-circuit, grounded in
// the teacher's backend/local/stat_unix.go pattern of asserting
// stat.Sys() to *syscall.Stat_t.
func devIno(info os.FileInfo) (visitedset.Key, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return visitedset.Key{}, false
	}
	return visitedset.Key{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true
}
