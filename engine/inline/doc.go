/*
Package inline synthesizes the box-tree children of an inline container
from the paragraph-element array and the line list a line breaker
produced for it: one line box per accepted break, and inside each line
box one "placement group" box per maximal run of elements sharing text
style, owning node and freedom from inline objects (spec.md §4.5).

Synthesis runs to completion within one call and does not suspend: a
bounded build queue holds line boxes awaiting (re)construction and is
flushed each time it fills, and a free list recycles
placement-group boxes reclaimed from lines that were bulldozed by a
changed break solution, so a container that is rebroken keeps most of
its existing boxes rather than reallocating the whole line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// MaxBuildQueue bounds the number of line boxes awaiting synthesis at
// once; Synthesize flushes the queue whenever it reaches this size and
// once more at the end, all within the same call (spec.md §4.5).
const MaxBuildQueue = 8
