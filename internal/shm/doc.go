// Package shm provides a shared-memory region that a parent process and its
// children map at the same time. The region is backed by an unlinked
// temporary file, mapped MAP_SHARED, and handed to children as an inherited
// file descriptor.
package shm

import "errors"

// ErrUnsupported is returned on platforms without mmap.
var ErrUnsupported = errors.New("shared memory regions are not supported on this platform")

// ChildFD is the descriptor number a child sees for the first entry of
// exec.Cmd.ExtraFiles.
const ChildFD = 3
