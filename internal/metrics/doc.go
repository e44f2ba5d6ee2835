// Package metrics records benchmark runs in a private Prometheus registry and
// snapshots runtime memory statistics around them.
package metrics
