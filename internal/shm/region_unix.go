//go:build unix

package shm

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Region is a mapped shared-memory window.
type Region struct {
	file *os.File
	data []byte
}

// Create allocates a region of size bytes in dir (os.TempDir() when empty).
// The backing file is unlinked immediately; it lives as long as some process
// holds it open or mapped.
func Create(dir string, size int) (*Region, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative region size %d", size)
	}
	f, err := os.CreateTemp(dir, "chunkbench-shm-*")
	if err != nil {
		return nil, fmt.Errorf("create region file: %w", err)
	}
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, fmt.Errorf("unlink region file: %w", err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("size region file: %w", err)
	}
	r, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Open maps a region inherited from the parent, typically
// os.NewFile(ChildFD, ...). The region takes ownership of f.
func Open(f *os.File, size int) (*Region, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat region file: %w", err)
	}
	if info.Size() != int64(size) {
		return nil, fmt.Errorf("region file holds %d bytes, want %d", info.Size(), size)
	}
	return mapFile(f, size)
}

func mapFile(f *os.File, size int) (*Region, error) {
	if size == 0 {
		return &Region{file: f}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap region: %w", err)
	}
	return &Region{file: f, data: data}, nil
}

// File returns the backing file, to be passed in exec.Cmd.ExtraFiles.
func (r *Region) File() *os.File { return r.file }

// Len returns the region size in bytes.
func (r *Region) Len() int { return len(r.data) }

// Bytes returns the mapped memory.
func (r *Region) Bytes() []byte { return r.data }

// Int32s views the mapped memory as host-endian int32 cells.
func (r *Region) Int32s() []int32 {
	if len(r.data) < 4 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.data[0])), len(r.data)/4)
}

// Close unmaps the memory and closes the backing file. Slices obtained from
// the region must not be used afterwards.
func (r *Region) Close() error {
	var err error
	if r.data != nil {
		err = unix.Munmap(r.data)
		r.data = nil
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}
