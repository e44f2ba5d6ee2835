package config

import "runtime"

// FallbackNumChunks is used when the processor count cannot be determined.
const FallbackNumChunks = 8

// DefaultNumChunks returns one chunk per logical processor, so every worker
// can own a core.
func DefaultNumChunks() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return FallbackNumChunks
}
