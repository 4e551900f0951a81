// Package hittest resolves pointer events against the spatial grid: point
// queries deliver HIT/UNHIT messages to a document's nodes via a stamped
// hit chain, and a caret-driven selection state machine turns a mouse
// drag into per-element selection flags across the inline containers it
// spans (spec.md §4.8).
package hittest

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
