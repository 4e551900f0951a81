// Package urlcache implements a mutex-protected fetch cache keyed by URL:
// entries move through a queued/fetching/ready/failed/evicted state
// machine driven entirely from inside Update calls, with notifications
// delivered synchronously while the lock is held (spec.md §5), following
// the teacher pack's url_cache.cpp fetch-slot design.
package urlcache

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
