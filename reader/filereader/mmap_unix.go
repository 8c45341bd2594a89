//go:build linux || darwin || freebsd || netbsd || openbsd

package filereader

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(f *os.File, size int64) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func munmapFile(data []byte) error {
	return unix.Munmap(data)
}

// adviseSequential hints the kernel that the mapping will be read mostly
// in order, matching the teacher's backend/local pattern of issuing
// madvise/fadvise hints on POSIX (see fadvise_unix.go) generalised from
// file descriptors to mappings.
func adviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
