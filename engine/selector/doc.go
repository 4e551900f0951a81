// Package selector parses and matches the markup language's selector
// grammar: a space-separated descendant chain of comma-separated
// tag/class/pseudoclass atoms, up to 16 clauses per level and 16 levels
// deep (spec.md §6). It is a small hand-written matcher, not a CSS
// selector engine — the grammar has no combinators beyond descendant,
// no attribute selectors, and only two pseudoclasses.
package selector

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
