//go:build !linux && !darwin && !freebsd

package arena

import (
	"errors"
	"fmt"
	"os"
)

// File is an arena region backed by an open file. On platforms without the
// unix mmap path the file is read into memory and written back on demand.
type File struct {
	f    *os.File
	data []byte
	size int64
}

// OpenFile reads the file at path into a private buffer. The caller decides
// afterwards whether to adopt the contents (VerifyHeader) or install a fresh
// header.
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

	data := make([]byte, sz)
	if _, err := f.ReadAt(data, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("arena: read failed: %w", err)
	}

	return &File{f: f, data: data, size: sz}, nil
}

// Close writes the buffer back and closes the file.
func (fl *File) Close() error {
	if fl.f == nil {
		return nil
	}
	err := fl.WriteBack()
	if cerr := fl.f.Close(); err == nil {
		err = cerr
	}
	fl.f = nil
	fl.data = nil
	return err
}

// Bytes returns the buffered region.
func (fl *File) Bytes() []byte { return fl.data }

// Size returns the length of the region in bytes.
func (fl *File) Size() int64 { return fl.size }

// FD returns the underlying file descriptor, or -1 when closed.
func (fl *File) FD() int {
	if fl == nil || fl.f == nil {
		return -1
	}
	return int(fl.f.Fd())
}

// Mapped reports whether the region is an OS mapping (false here).
func (fl *File) Mapped() bool { return false }

var errClosed = errors.New("arena: file closed")

// WriteBack flushes the private buffer to the file.
func (fl *File) WriteBack() error {
	if fl.f == nil {
		return errClosed
	}
	if _, err := fl.f.WriteAt(fl.data, 0); err != nil {
		return err
	}
	return nil
}
