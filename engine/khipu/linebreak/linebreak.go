/*
Package linebreak collects the vocabulary shared by the bounded
Knuth-Plass breaker in the knuthplass sub-package: cost parameters, the
elastic-width accumulator, and the paragraph-shape interface.

BSD License

Copyright (c) 2017–20, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package linebreak

// https://quod.lib.umich.edu/j/jep/3336451.0013.105?view=text;rgn=main

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
)

// T traces to a global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Merits is a demerits/cost value; lower is better.
type Merits int32

// CharPos indexes a paragraph element within a khipu.Run.
type CharPos int64

// ----------------------------------------------------------------------

// Parameters is a collection of configuration parameters for line-breaking,
// following the TeX-derived cost model of spec.md §4.4.
type Parameters struct {
	Tolerance            Merits      // acceptable demerits
	PreTolerance         Merits      // acceptable demerits for first (rough) pass
	LinePenalty          Merits      // penalty for an additional line
	HyphenPenalty        Merits      // penalty for hyphenating words
	ExHyphenPenalty      Merits      // penalty for explicit (already-hyphenated) words
	DoubleHyphenDemerits Merits      // demerits for consecutive hyphenated lines
	FinalHyphenDemerits  Merits      // demerits for a hyphen in the last line
	EmergencyStretch     dimen.Dimen // stretching acceptable when desperate
	LeftSkip             WSS         // glue at left edge of paragraphs
	RightSkip            WSS         // glue at right edge of paragraphs
	ParFillSkip          WSS         // glue at the end of a paragraph
}

// DefaultParameters are the standard line-breaking parameters. They
// promote a tolerant configuration, suitable for almost always finding an
// acceptable set of linebreaks.
var DefaultParameters = &Parameters{
	Tolerance:            5000,
	PreTolerance:         100,
	LinePenalty:          10,
	HyphenPenalty:        50,
	ExHyphenPenalty:      50,
	DoubleHyphenDemerits: 0,
	FinalHyphenDemerits:  50,
	EmergencyStretch:     50 * dimen.BP,
	LeftSkip:             WSS{},
	RightSkip:            WSS{},
	ParFillSkip:          WSS{Max: dimen.Infinity},
}

// ----------------------------------------------------------------------

// WSS (width, stretch & shrink) holds an elastic width: a natural width
// plus the minimum (maximally shrunk) and maximum (maximally stretched)
// widths it can take on. It stands in for the teacher's khipu.Glue knot,
// which no longer exists as a paragraph element; inter-word glue is
// synthesized on the fly from adjacent fonts' space-width metrics
// instead of being materialized as a discrete element (spec.md §4.4.1).
type WSS struct {
	W   dimen.Dimen
	Min dimen.Dimen
	Max dimen.Dimen
}

// Spread returns the width's natural, minimum and maximum extents.
func (wss WSS) Spread() (w, min, max dimen.Dimen) {
	return wss.W, wss.Min, wss.Max
}

// SpaceGlue builds the WSS for a run of inter-word space, given the
// larger of the two adjacent fonts' space widths (spec.md §4.4 step 1).
func SpaceGlue(spaceWidth dimen.Dimen) WSS {
	return WSS{
		W:   spaceWidth,
		Min: spaceWidth - spaceWidth/3,
		Max: spaceWidth + spaceWidth/2,
	}
}

// Add adds dimensions from other to wss, returning a new WSS.
func (wss WSS) Add(other WSS) WSS {
	return WSS{W: wss.W + other.W, Min: wss.Min + other.Min, Max: wss.Max + other.Max}
}

// Subtract subtracts dimensions of other from wss, returning a new WSS.
func (wss WSS) Subtract(other WSS) WSS {
	return WSS{W: wss.W - other.W, Min: wss.Min - other.Min, Max: wss.Max - other.Max}
}

// Copy copies a WSS.
func (wss WSS) Copy() WSS {
	return WSS{W: wss.W, Min: wss.Min, Max: wss.Max}
}

func (wss WSS) String() string {
	return fmt.Sprintf("{%.2f < %.2f < %.2f}", wss.Min.Points(), wss.W.Points(), wss.Max.Points())
}

// InfinityDemerits is the worst demerit value possible.
const InfinityDemerits Merits = 10000

// InfinityMerits is the best (most desirable) demerit value possible.
const InfinityMerits Merits = -10000

// CapDemerits clamps a demerit value to the [InfinityMerits-1000,
// InfinityDemerits] range.
func CapDemerits(d Merits) Merits {
	if d > InfinityDemerits {
		d = InfinityDemerits
	} else if d < InfinityMerits-1000 {
		d = InfinityMerits - 1000
	}
	return d
}

// --- Interfaces -------------------------------------------------------

// Cursor iterates over a khipu.Run, exposing the current element and its
// position.
type Cursor interface {
	Next() bool
	Element() khipu.Element
	Pos() CharPos
	Run() khipu.Run
}

// ParShape returns the line length for a given (zero-based) line number,
// allowing non-rectangular paragraph shapes.
type ParShape interface {
	LineLength(line int32) dimen.Dimen
}

type rectParShape dimen.Dimen

func (r rectParShape) LineLength(int32) dimen.Dimen {
	return dimen.Dimen(r)
}

// RectangularParShape returns a ParShape for paragraphs of constant line
// length.
func RectangularParShape(linelen dimen.Dimen) ParShape {
	return rectParShape(linelen)
}

// runCursor is the default Cursor implementation, walking a khipu.Run
// linearly.
type runCursor struct {
	run khipu.Run
	pos CharPos
}

// NewCursor returns a Cursor walking run from its first element.
func NewCursor(run khipu.Run) Cursor {
	return &runCursor{run: run, pos: -1}
}

func (c *runCursor) Next() bool {
	if int(c.pos)+1 >= len(c.run) {
		return false
	}
	c.pos++
	return true
}

func (c *runCursor) Element() khipu.Element {
	return c.run[c.pos]
}

func (c *runCursor) Pos() CharPos {
	return c.pos
}

func (c *runCursor) Run() khipu.Run {
	return c.run
}
