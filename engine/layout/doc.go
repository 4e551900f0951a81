/*
Package layout implements the sizing wheel: the multi-pass algorithm that
resolves a box tree's width and height slots under a mix of absolute,
fractional, grow and content-driven (auto/shrink) dimension modes, then
positions and clips the resolved boxes (spec.md §4.2, §4.3, §4.6).

Sizing proceeds box by box along an explicit stack of frames rather than
Go's own call stack, so a run can suspend when it exceeds its time budget
and resume later from the exact point it left off (spec.md §5). Position
and clip are simple, idempotent passes over the already-sized tree and
run to completion once started: re-running either from scratch after a
timeout recomputes the same result, since neither mutates a box's own
size slots.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
