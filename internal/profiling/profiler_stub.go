//go:build !profiler

// Package profiling is a no-op unless the binary is built with the
// profiler tag.
package profiling

import "context"

// Start does nothing in non-profiler builds.
func Start(ctx context.Context) func() { return nil }
