/*
Package box implements Box, the laid-out rectangle produced for block and
inline-container nodes (and, inside inline containers, for line boxes and
text boxes created during inline synthesis).

BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

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
package box

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/tree"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// For padding, margins, etc. 4-way values always start at the top and
// travel clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Axis selects horizontal or vertical.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Slot names one of a box's four size records per axis.
type Slot uint8

const (
	SlotIdeal Slot = iota
	SlotPreferred
	SlotIntrinsic
	SlotExtrinsic
	numSlots
)

// Arrangement is the major-axis distribution of children within a parent's
// free space.
type Arrangement uint8

const (
	ArrangeStart Arrangement = iota
	ArrangeMiddle
	ArrangeEnd
)

// Alignment is a child's own placement along the parent's minor axis.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignMiddle
	AlignEnd
	AlignStretch
)

// ClipSelector picks which of a box's nested rectangles (outer / padding /
// content / margin) supplies a clip rectangle's edges.
type ClipSelector uint8

const (
	ClipOuter ClipSelector = iota
	ClipPadding
	ClipContent
	ClipMargin
)

// ClipEdges records which edges of the clip box actually clip, with
// unset edges replaced by +-infinity (spec.md §4.6).
type ClipEdges uint8

const (
	ClipTop ClipEdges = 1 << iota
	ClipRight
	ClipBottom
	ClipLeft
	ClipAll = ClipTop | ClipRight | ClipBottom | ClipLeft
)

// axisSize holds the four size slots, their validity bits, bounds and
// box-edge measures for a single axis.
type axisSize struct {
	Mode    length.Mode
	Ideal   length.Length
	slots   [numSlots]dimen.Dimen
	valid   [numSlots]bool
	Min, Max dimen.Dimen // 0 means "no bound"
	Padding [2]dimen.Dimen // [start, end] e.g. left/right or top/bottom
	Margin  [2]dimen.Dimen
	Grow    float64
	Shrink  float64
}

func (a *axisSize) Get(slot Slot) (dimen.Dimen, bool) {
	return a.slots[slot], a.valid[slot]
}

func (a *axisSize) Set(slot Slot, d dimen.Dimen) {
	a.slots[slot] = dimen.Clamp(d, a.Min, a.Max)
	a.valid[slot] = true
}

func (a *axisSize) Invalidate(slot Slot) {
	a.valid[slot] = false
}

// Box is a laid-out rectangle: per-axis size records, document-space
// position, arrangement/alignment, a clip-box selector, depth bookkeeping,
// spatial-grid membership and the element range it covers if it is a
// line box or text box inside an inline container.
type Box struct {
	tree.Node // shared tree-node header; Payload points back to *Box

	Pos  dimen.Point // content-box top-left in document space
	H, V axisSize    // horizontal and vertical axis records

	MainAxis    Axis // the axis children are distributed and summed along during sizing (spec.md §4.2, §4.6); Horizontal by default
	Arrangement Arrangement
	Alignment   Alignment

	ClipSelector ClipSelector
	ClipEdges    ClipEdges
	ClipRect     dimen.Rect // computed during the clip pass

	Depth         int32
	DepthInterval int32

	VisibilityStamp uint64
	HitStamp        uint64

	GridCell   uint32 // cell code the box is currently filed under; 0 = not filed
	cellValid  bool

	Owner interface{} // back-pointer to the owning node (weak by convention)

	FirstElement, LastElement int // element range into the inline container's paragraph-element array; -1,-1 if not applicable

	flags Flags
}

// Flags are boolean box attributes cleared solely through ClearFlags /
// ModifyClear (spec.md §4.3) and set through SetFlags, so mutation
// ordering stays auditable.
type Flags uint32

const (
	FlagTreeValid Flags = 1 << iota
	FlagFlexValid
	FlagBoundsDefined
	FlagSameParagraph
	FlagTextLayerMayBeValid
)

// Has reports whether all bits in mask are set.
func (b *Box) Has(mask Flags) bool { return b.flags&mask == mask }

// set sets the given flag bits directly. Used only during initial
// construction; once a box is part of a laid-out tree, flags are set
// through SetFlags and cleared through ClearFlags/ModifyClear.
func (b *Box) set(mask Flags) { b.flags |= mask }

// SetFlags sets mask on b with no propagation, the positive-going
// counterpart to ClearFlags. Used by clients (inline synthesis, the
// sizing wheel) to mark state as settled once they have recomputed it;
// unlike ModifyClear, setting a flag never needs to invalidate a parent.
func (b *Box) SetFlags(mask Flags) {
	b.flags |= mask
}

// ClearFlags clears mask on b with no further propagation. It is the only
// function allowed to directly zero flag bits during layout.
func (b *Box) ClearFlags(mask Flags) {
	b.flags &^= mask
}

// ModifyClear clears mask on b and propagates the consequences upward to
// its parent per spec.md §4.3: a box losing FlagTreeValid turns its
// parent's FlagTreeValid off too; a box whose size changed invalidates a
// parent slot that depends on children.
func (b *Box) ModifyClear(mask Flags, parentDependsOnChildren bool) {
	b.ClearFlags(mask)
	parent := AsBox(b.TreeNode().Parent())
	if parent == nil {
		return
	}
	if mask&FlagTreeValid != 0 {
		parent.ClearFlags(FlagTreeValid)
	}
	if parentDependsOnChildren {
		parent.H.Invalidate(SlotIntrinsic)
		parent.V.Invalidate(SlotIntrinsic)
	}
}

// New creates a detached Box with both axes defaulting to auto length and
// no element range.
func New() *Box {
	b := &Box{FirstElement: -1, LastElement: -1}
	b.Node = tree.NewNode(b)
	b.H.Ideal = length.AutoLength
	b.V.Ideal = length.AutoLength
	b.set(FlagTreeValid)
	return b
}

// TreeNode returns the shared tree-node header for b.
func (b *Box) TreeNode() *tree.Node {
	return &b.Node
}

// AsBox recovers the *Box embedding a given tree.Node, or nil.
func AsBox(tn *tree.Node) *Box {
	if tn == nil {
		return nil
	}
	bx, _ := tn.Payload.(*Box)
	return bx
}

// Parent returns b's parent Box, or nil.
func (b *Box) Parent() *Box {
	return AsBox(b.TreeNode().Parent())
}

// Axis returns the axis record for ax.
func (b *Box) Axis(ax Axis) *axisSize {
	if ax == Horizontal {
		return &b.H
	}
	return &b.V
}

// Slot reads a size slot for the given axis.
func (b *Box) Slot(ax Axis, slot Slot) (dimen.Dimen, bool) {
	return b.Axis(ax).Get(slot)
}

// SetSlot writes a size slot for the given axis and clamps it to the
// axis's min/max.
func (b *Box) SetSlot(ax Axis, slot Slot, d dimen.Dimen) {
	b.Axis(ax).Set(slot, d)
}

// Width returns the extrinsic width, 0 if not yet valid.
func (b *Box) Width() dimen.Dimen {
	w, _ := b.Slot(Horizontal, SlotExtrinsic)
	return w
}

// Height returns the extrinsic height, 0 if not yet valid.
func (b *Box) Height() dimen.Dimen {
	h, _ := b.Slot(Vertical, SlotExtrinsic)
	return h
}

// OuterRect returns b's document-space outer rectangle (content box plus
// padding plus margin), used by the spatial grid.
func (b *Box) OuterRect() dimen.Rect {
	left := b.Pos.X - b.H.Padding[0] - b.H.Margin[0]
	top := b.Pos.Y - b.V.Padding[0] - b.V.Margin[0]
	w := b.Width() + b.H.Padding[0] + b.H.Padding[1] + b.H.Margin[0] + b.H.Margin[1]
	h := b.Height() + b.V.Padding[0] + b.V.Padding[1] + b.V.Margin[0] + b.V.Margin[1]
	return dimen.Rect{TopL: dimen.Point{X: left, Y: top}, W: w, H: h}
}

// ContentRect returns b's content rectangle (excludes padding/margin).
func (b *Box) ContentRect() dimen.Rect {
	return dimen.Rect{TopL: b.Pos, W: b.Width(), H: b.Height()}
}

// ClipBoxRect returns the rectangle selected by b's ClipSelector, with any
// edge not set in ClipEdges replaced by +-infinity, per spec.md §4.6.
func (b *Box) ClipBoxRect() dimen.Rect {
	var r dimen.Rect
	switch b.ClipSelector {
	case ClipOuter:
		r = b.OuterRect()
	case ClipMargin:
		r = b.OuterRect()
	case ClipPadding:
		r = dimen.Rect{
			TopL: dimen.Point{X: b.Pos.X - b.H.Padding[0], Y: b.Pos.Y - b.V.Padding[0]},
			W:    b.Width() + b.H.Padding[0] + b.H.Padding[1],
			H:    b.Height() + b.V.Padding[0] + b.V.Padding[1],
		}
	default: // ClipContent
		r = b.ContentRect()
	}
	if b.ClipEdges&ClipAll == ClipAll {
		return r
	}
	x0, y0 := r.TopL.X, r.TopL.Y
	x1, y1 := r.TopL.X+r.W, r.TopL.Y+r.H
	if b.ClipEdges&ClipLeft == 0 {
		x0 = -dimen.Infinity
	}
	if b.ClipEdges&ClipTop == 0 {
		y0 = -dimen.Infinity
	}
	if b.ClipEdges&ClipRight == 0 {
		x1 = dimen.Infinity
	}
	if b.ClipEdges&ClipBottom == 0 {
		y1 = dimen.Infinity
	}
	return dimen.RectFromCorners(dimen.Point{X: x0, Y: y0}, dimen.Point{X: x1, Y: y1})
}

// DebugString returns a textual representation of a box's geometry.
// Intended for debugging.
func (b *Box) DebugString() string {
	w, wok := b.Slot(Horizontal, SlotExtrinsic)
	h, hok := b.Slot(Vertical, SlotExtrinsic)
	return fmt.Sprintf("box{ pos=%v  w=%v(valid=%v)  h=%v(valid=%v)  elems=[%d,%d) }",
		b.Pos, w, wok, h, hok, b.FirstElement, b.LastElement)
}

// ---------------------------------------------------------------------------

// ErrUnderspecified is returned when a dimension calculation cannot be
// completed because the input values are underspecified.
var ErrUnderspecified = errors.New("box: width dimensions are underspecified")

// ErrCyclicDependency is returned when a shrink-sized box has a descendant
// that grows without a bound, per spec.md §4.2's cycle-detection rule.
var ErrCyclicDependency = errors.New("box: shrink-sized ancestor has an unbounded growing descendant")
