/*
Package view turns the box tree's laid-out geometry into an ordered
command list for a single document-space viewport (spec.md §4.7): query
the grid for the boxes overlapping the view rectangle, mark them visible,
emit one draw-command header per box per paint layer, radix-sort the
headers by (depth, layer key), and scan the sorted run to emit actual
commands — de-duplicating SET_CLIP against a small ring buffer of recently
emitted clip rectangles and coalescing consecutive text headers that share
a font, clip rectangle and y-coordinate into a single batched DRAW_TEXT
command.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package view

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
