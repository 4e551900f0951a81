// Package markup parses the engine's bespoke tag-based markup language
// into a tree of engine/node.Node (spec.md §6): angle-bracket tags,
// attributes assigned with one of six operators, typed attribute values
// (booleans, numbers, percentages, strings, colour/url functional
// literals, keywords), and free text with backslash escapes for `<`,
// `>` and `\`. Styling attributes cascade through an
// engine/style.Registers scope exactly the way nested tags nest in the
// source, so a node's Style field reflects every ancestor override in
// effect at the point it was parsed.
package markup

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
