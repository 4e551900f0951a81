package knuthplass

/*
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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/linebreak"
)

// MaxActive bounds the active candidate set, keeping the breaker's
// worst-case running time linear in the number of paragraph elements
// (spec.md §4.4), unlike the teacher's unbounded breakpoint DAG.
const MaxActive = 16

// SpaceWidth resolves the glue generated by the word end at element
// position i, given the containing run and style, returning the max
// space-width of the two adjacent fonts' metrics (spec.md §4.4 step 1).
// A breaking client supplies one of these bound to its font metrics
// cache; tests may use a constant-width stub.
type SpaceWidth func(run khipu.Run, i int) dimen.Dimen

// HeightFunc resolves a single element's line-box height contribution
// (its font's cell height), used to track the tallest element on each
// candidate line as it accumulates (spec.md §4.4: "max element height on
// the line").
type HeightFunc func(e khipu.Element) dimen.Dimen

// Line is one accepted line of a broken paragraph: a half-open element
// range, its unscaled (natural) width, the tallest element's height, and
// the adjustment ratio used for justification (0 for unscaled lines).
type Line struct {
	From, To    int
	Width       dimen.Dimen
	Height      dimen.Dimen
	AdjustRatio float64
	Unscaled    bool
}

// Solution is a complete broken paragraph: its lines plus the demerits
// total of the chosen path, and the preferred (infinite-width) size used
// for intrinsic sizing.
type Solution struct {
	Lines           []Line
	TotalDemerits   linebreak.Merits
	PreferredWidth  dimen.Dimen
	PreferredHeight dimen.Dimen
}

// candidate is one currently-active feasible breakpoint: its position,
// predecessor on the minimal-cost path, and the running sums of the
// segment accumulating since it was created.
type candidate struct {
	pos       int
	prev      *candidate
	totalCost linebreak.Merits
	lineWidth dimen.Dimen // unscaled width of the finished segment ending here (from prev to pos)
	lineStretch, lineShrink dimen.Dimen // that segment's total stretch/shrink, for the justification ratio
	height    dimen.Dimen

	width, stretch, shrink dimen.Dimen
	maxHeight              dimen.Dimen
	unscaled               bool
}

// Break runs the bounded Knuth-Plass algorithm over run, fitting lines of
// width maxWidth, and returns the minimal-demerits solution. height may be
// nil, in which case lines report a zero height.
func Break(run khipu.Run, maxWidth dimen.Dimen, params *linebreak.Parameters, spaceWidth SpaceWidth, height HeightFunc) (*Solution, error) {
	if params == nil {
		params = NewKPDefaultParameters()
	}
	if spaceWidth == nil {
		spaceWidth = func(khipu.Run, int) dimen.Dimen { return 0 }
	}
	if height == nil {
		height = func(khipu.Element) dimen.Dimen { return 0 }
	}
	active := []*candidate{{pos: 0, prev: nil}}

	for i, e := range run {
		// Step 1: update every active candidate with this element's advance,
		// plus trailing glue generated by a preceding word end.
		h := height(e)
		for _, c := range active {
			c.width += e.Advance
			if h > c.maxHeight {
				c.maxHeight = h
			}
			if i > 0 && run[i-1].IsWordEnd() {
				g := linebreak.SpaceGlue(spaceWidth(run, i-1))
				c.width += g.W
				c.stretch += g.Max - g.W
				c.shrink += g.W - g.Min
			}
		}
		active = dropUnreachable(active, maxWidth)

		isLast := i == len(run)-1
		if isLast {
			// spec.md §4.4: the paragraph's parfillskip glue has infinite
			// stretch, so the final line is never judged overfull on its
			// stretch side and always breaks cheaply here.
			for _, c := range active {
				c.stretch = dimen.Infinity
			}
		}

		if e.Penalty == khipu.PenaltyProhibitBreak {
			continue
		}
		forced := e.Penalty == khipu.PenaltyForceBreak
		if !forced && e.Penalty == khipu.PenaltyNone && !e.IsWordEnd() {
			// a plain, non-breaking code point: no breakpoint evaluated here
			continue
		}

		best, bestCost := bestCandidate(active, maxWidth, params, penaltyValue(e.Penalty, params))
		if best == nil {
			if forced {
				best = &candidate{pos: i}
				bestCost = 0
			} else {
				continue
			}
		}
		next := &candidate{
			pos:         i + 1,
			prev:        best,
			totalCost:   best.totalCost + bestCost,
			lineWidth:   best.width,
			lineStretch: best.stretch,
			lineShrink:  best.shrink,
			height:      best.maxHeight,
			unscaled:    isLast,
		}
		if e.IsWordEnd() && !isLast {
			// the glue this word end generates is dropped at the break: start
			// the new line's sums at its negation so that the next element's
			// glue update cancels it
			g := linebreak.SpaceGlue(spaceWidth(run, i))
			next.width = -g.W
			next.stretch = -(g.Max - g.W)
			next.shrink = -(g.W - g.Min)
		}
		if forced {
			active = []*candidate{next}
		} else {
			active = insertBounded(active, next)
		}
	}
	var best *candidate
	for _, c := range active {
		if c.pos != len(run) {
			continue // never reached a breakpoint at the run's end; not a solution
		}
		if best == nil || c.totalCost < best.totalCost {
			best = c
		}
	}
	if best == nil {
		// the run never produced a breakpoint at its end (e.g. no word end
		// and no forced break anywhere): the whole run is a single line.
		best = &candidate{pos: len(run), prev: &candidate{pos: 0}, unscaled: true}
		for _, e := range run {
			best.lineWidth += e.Advance
			if h := height(e); h > best.height {
				best.height = h
			}
		}
	}
	return finalize(run, best, maxWidth), nil
}

// dropUnreachable removes candidates whose minimal (max-shrunk) line
// length already exceeds maxWidth, except the last remaining one.
func dropUnreachable(active []*candidate, maxWidth dimen.Dimen) []*candidate {
	if len(active) <= 1 {
		return active
	}
	kept := active[:0]
	for _, c := range active {
		if c.width-c.shrink <= maxWidth {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return active[len(active)-1:]
	}
	return kept
}

// bestCandidate scores every active candidate against a prospective
// breakpoint and returns the minimal-total one together with its cost.
func bestCandidate(active []*candidate, maxWidth dimen.Dimen, params *linebreak.Parameters, penalty linebreak.Merits) (*candidate, linebreak.Merits) {
	var best *candidate
	var bestCost linebreak.Merits
	for _, c := range active {
		cost, ok := lineCost(c, maxWidth, params, penalty)
		if !ok {
			continue
		}
		if best == nil || c.totalCost+cost < best.totalCost+bestCost {
			best, bestCost = c, cost
		}
	}
	return best, bestCost
}

// lineCost computes the badness/demerits of breaking candidate c's
// segment at the current position, per spec.md §4.4 step 2: badness is a
// cubic function of the slack over stretch-or-shrink, scaled to reach
// ~10,000 at the conventional hard limit r≈4.64.
func lineCost(c *candidate, maxWidth dimen.Dimen, params *linebreak.Parameters, penalty linebreak.Merits) (linebreak.Merits, bool) {
	slack := maxWidth - c.width
	var stretchOrShrink dimen.Dimen
	if slack >= 0 {
		stretchOrShrink = c.stretch
	} else {
		stretchOrShrink = c.shrink
		slack = -slack
	}
	if stretchOrShrink <= 0 {
		if slack > 0 {
			return 0, false // cannot stretch or shrink to reach the target at all
		}
		stretchOrShrink = 1
	}
	r := float64(slack) / float64(stretchOrShrink)
	badness := linebreak.Merits(minF(r*r*r*10000.0/100.0, 10000) * 1) // ~10000 at r≈4.64
	badness = badness + params.LinePenalty
	b2 := badness * badness
	p2 := absMerits(penalty) * absMerits(penalty)
	var d linebreak.Merits
	if penalty >= 0 {
		d = b2 + p2
	} else {
		d = b2 - p2
	}
	return linebreak.CapDemerits(d), true
}

// penaltyValue reads the numeric demerits contribution of a paragraph
// element's penalty classification.
func penaltyValue(p khipu.PenaltyType, params *linebreak.Parameters) linebreak.Merits {
	switch p {
	case khipu.PenaltyForceBreak:
		return linebreak.InfinityMerits
	case khipu.PenaltyMultipartHyphen:
		return params.HyphenPenalty
	case khipu.PenaltyInterCharacter:
		return params.ExHyphenPenalty
	default:
		return 0
	}
}

// insertBounded inserts next into active, displacing the worst-scoring
// (highest total cost) candidate once the set is full.
func insertBounded(active []*candidate, next *candidate) []*candidate {
	if len(active) < MaxActive {
		return append(active, next)
	}
	worst := 0
	for i, c := range active[1:] {
		if c.totalCost > active[worst].totalCost {
			worst = i + 1
		}
	}
	if next.totalCost < active[worst].totalCost {
		active[worst] = next
	}
	return active
}

// finalize walks the minimal-demerits path backward from best, producing
// the paragraph's line list and preferred (infinite-width) size.
func finalize(run khipu.Run, best *candidate, maxWidth dimen.Dimen) *Solution {
	var lines []Line
	for c := best; c.prev != nil; c = c.prev {
		ratio := 0.0
		if !c.unscaled {
			ratio = adjustRatio(c.lineWidth, c.lineStretch, c.lineShrink, maxWidth)
		}
		lines = append(lines, Line{
			From:        c.prev.pos,
			To:          c.pos,
			Width:       c.lineWidth,
			Height:      c.height,
			AdjustRatio: ratio,
			Unscaled:    c.unscaled,
		})
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	sol := &Solution{Lines: lines, TotalDemerits: best.totalCost}
	for _, l := range sol.Lines {
		if l.Width > sol.PreferredWidth {
			sol.PreferredWidth = l.Width
		}
		sol.PreferredHeight += l.Height
	}
	return sol
}

// NewKPDefaultParameters creates line-breaking parameters similar to (but
// not identical to) TeX's.
func NewKPDefaultParameters() *linebreak.Parameters {
	return &linebreak.Parameters{
		Tolerance:            200,
		PreTolerance:         100,
		LinePenalty:          10,
		HyphenPenalty:        50,
		ExHyphenPenalty:      50,
		DoubleHyphenDemerits: 2000,
		FinalHyphenDemerits:  10000,
		EmergencyStretch:     20 * dimen.BP,
		LeftSkip:             linebreak.WSS{},
		RightSkip:            linebreak.WSS{},
		ParFillSkip:          linebreak.WSS{Max: dimen.Infinity},
	}
}

// adjustRatio computes how far a line's natural width must be stretched
// (positive) or shrunk (negative) to exactly fill maxWidth, for the
// justification pass to apply selectively (spec.md §4.5 Justification).
// A shrink ratio is capped at -1 since glue cannot shrink past its
// minimum; stretch is left uncapped, signalling an underfull line.
func adjustRatio(width, stretch, shrink, maxWidth dimen.Dimen) float64 {
	slack := maxWidth - width
	if slack >= 0 {
		if stretch <= 0 {
			return 0
		}
		return float64(slack) / float64(stretch)
	}
	if shrink <= 0 {
		return 0
	}
	r := float64(slack) / float64(shrink)
	if r < -1 {
		r = -1
	}
	return r
}

func absMerits(n linebreak.Merits) linebreak.Merits {
	if n < 0 {
		return -n
	}
	return n
}

func minF(n, m float64) float64 {
	if n < m {
		return n
	}
	return m
}
