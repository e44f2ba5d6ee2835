// Package dispatch runs a workload under one of three execution strategies:
// a single sequential call, one child process per chunk, or one goroutine per
// chunk. Every strategy partitions the same way, runs the same per-chunk
// function and combines partial results into the value a sequential run
// produces.
package dispatch
