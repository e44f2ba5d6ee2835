//go:build !unix

package shm

import "os"

// Region is unavailable on this platform.
type Region struct{}

// Create always fails with ErrUnsupported.
func Create(string, int) (*Region, error) { return nil, ErrUnsupported }

// Open always fails with ErrUnsupported.
func Open(*os.File, int) (*Region, error) { return nil, ErrUnsupported }

func (r *Region) File() *os.File { return nil }
func (r *Region) Len() int       { return 0 }
func (r *Region) Bytes() []byte  { return nil }
func (r *Region) Int32s() []int32 {
	return nil
}
func (r *Region) Close() error { return nil }
