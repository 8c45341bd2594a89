//go:build windows

package filereader

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func mmapFile(f *os.File, size int64) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, err
	}

	var data []byte
	hdr := (*[1 << 30]byte)(unsafe.Pointer(addr))[:size:size]
	data = hdr
	return data, nil
}

func munmapFile(data []byte) error {
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.UnmapViewOfFile(addr)
}

// adviseSequential has no Windows equivalent in this path; the mapped
// view is already backed by the OS page cache without a hint API here.
func adviseSequential(_ []byte) {}
