// Package backend declares the platform call surface the engine reaches
// through rather than implements: font matching and metrics, text
// measurement, network image loading, clipboard access and timing
// (spec.md §6's "Back-end calls required"). Nothing in this module
// supplies a concrete implementation — a host embedding the engine
// wires real fonts, a real image decoder, a real clipboard and a real
// clock behind these interfaces.
package backend

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
