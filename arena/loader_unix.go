//go:build linux || darwin || freebsd

package arena

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// File is an arena region backed by an open file, mmapped read-write on
// platforms that support it so mutations land in the page cache directly.
type File struct {
	f    *os.File
	data []byte
	size int64
}

// OpenFile maps the file at path read-write. The caller decides afterwards
// whether to adopt the contents (VerifyHeader) or install a fresh header.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("arena: empty file: %s", path)
	}

	data, err := syscall.Mmap(
		int(f.Fd()),
		0,
		int(sz),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED,
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("arena: mmap failed: %w", err)
	}

	return &File{f: f, data: data, size: sz}, nil
}

// Close unmaps the region and closes the file.
func (fl *File) Close() error {
	var err error
	if fl.data != nil {
		_ = syscall.Munmap(fl.data)
		fl.data = nil
	}
	if fl.f != nil {
		err = fl.f.Close()
		fl.f = nil
	}
	return err
}

// Bytes returns the mapped region.
func (fl *File) Bytes() []byte { return fl.data }

// Size returns the length of the mapped region in bytes.
func (fl *File) Size() int64 { return fl.size }

// FD returns the underlying file descriptor, or -1 when closed.
func (fl *File) FD() int {
	if fl == nil || fl.f == nil {
		return -1
	}
	return int(fl.f.Fd())
}

// Mapped reports whether the region is an OS mapping (true here) rather than
// a private copy.
func (fl *File) Mapped() bool { return true }

var errClosed = errors.New("arena: file closed")

// WriteBack is a no-op for mapped files; stores already hit the shared
// mapping. It exists so callers can treat mapped and copied regions alike.
func (fl *File) WriteBack() error {
	if fl.f == nil {
		return errClosed
	}
	return nil
}
