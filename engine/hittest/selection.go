package hittest

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/node"
)

// End is the sentinel offset meaning "after the last element", used when a
// query point lies past the end of a container's content.
const End = -1

// Address is a canonicalized caret position: an inline-container node (or
// a non-inline node, if the hit box has none) and an element offset into
// its run, or End (spec.md §4.8).
type Address struct {
	Node   *node.Node
	Offset int
}

// CaretSource resolves a text box's per-character boundaries, needed to
// place a caret inside it. document.go implements this by projecting an
// inline.TextLayer's XPos into boundary offsets, the same seam pattern as
// engine/layout's InlineDriver and engine/view's TextSource.
type CaretSource interface {
	// CharBoundaries returns len(box element range)+1 x-offsets, relative
	// to b's left content edge, one before each character and one after
	// the last, and true if b is a text box. False means b carries no
	// text layer (an embedded object or an empty box).
	CharBoundaries(b *box.Box) ([]dimen.Dimen, bool)
}

// ClosingRule resolves a caret's before/after tie at an exact box-boundary
// hit, and clamps an address offset that reads End or exceeds its
// container's element count during a selection rebuild.
type ClosingRule uint8

const (
	// TiesToStart resolves an exact tie to the position before the split.
	TiesToStart ClosingRule = iota
	// TiesToEnd resolves an exact tie to the position after the split.
	TiesToEnd
	// TiesToCloser resolves an exact tie by nearest neighbour; since a
	// true tie is equidistant by definition, it behaves as TiesToStart.
	TiesToCloser
)

// IsSelectionAnchor is the default AnchorQuery eligibility predicate: any
// box carrying an element range (a line box or one of its placement
// groups) is eligible to anchor a selection.
func IsSelectionAnchor(b *box.Box) bool {
	return b.FirstElement >= 0
}

// ResolveAnchor runs the anchor query from (qx, y) in the given vertical
// direction and turns the winning box into a canonical Address. source may
// be nil, in which case every anchor is treated as a non-text box.
func ResolveAnchor(grid *box.Grid, source CaretSource, qx, x0, x1, y dimen.Dimen, direction int, rule ClosingRule) (Address, bool) {
	b := grid.AnchorQuery(qx, x0, x1, y, direction, 0, IsSelectionAnchor)
	if b == nil {
		return Address{}, false
	}
	n := owningNode(b)
	if n == nil {
		return Address{}, false
	}
	return canonicalize(n, caretOffset(b, qx, source, rule)), true
}

// caretOffset finds the element index nearest qx inside b: for a text box
// it consults CharBoundaries, otherwise it splits at the content
// rectangle's horizontal midpoint.
func caretOffset(b *box.Box, qx dimen.Dimen, source CaretSource, rule ClosingRule) int {
	var bounds []dimen.Dimen
	ok := false
	if source != nil {
		bounds, ok = source.CharBoundaries(b)
	}
	if !ok || len(bounds) == 0 {
		mid := b.ContentRect().TopL.X + b.Width()/2
		switch {
		case qx < mid:
			return b.FirstElement
		case qx > mid:
			return b.LastElement
		default:
			return closerEndOf(b.FirstElement, b.LastElement, rule)
		}
	}
	relX := qx - b.ContentRect().TopL.X
	best := 0
	bestDist := (relX - bounds[0]).Abs()
	for i := 1; i < len(bounds); i++ {
		d := (relX - bounds[i]).Abs()
		if d < bestDist {
			best, bestDist = i, d
		} else if d == bestDist {
			best = closerEndOf(best, i, rule)
		}
	}
	return b.FirstElement + best
}

func closerEndOf(start, end int, rule ClosingRule) int {
	if rule == TiesToEnd {
		return end
	}
	return start
}

// canonicalize walks n's ancestors to the deepest (nearest) inline
// container, or returns n unchanged if none of its ancestors (nor n
// itself) is one (spec.md §4.8).
func canonicalize(n *node.Node, offset int) Address {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.IsInlineContainer() {
			return Address{Node: cur, Offset: offset}
		}
	}
	return Address{Node: n, Offset: offset}
}

// Tracker holds the mouse-down anchor for an in-progress selection drag.
type Tracker struct {
	down     Address
	haveDown bool
}

// Down records the selection anchor for a left-button press.
func (t *Tracker) Down(a Address) {
	t.down, t.haveDown = a, true
}

// SelectionTarget applies a rebuilt selection to one inline container's
// elements. document.go implements this against inline.Container.Run,
// setting or clearing khipu.FlagSelected in [from, to).
type SelectionTarget interface {
	ElementCount(n *node.Node) int
	SetSelected(n *node.Node, from, to int)
}

// Rebuild resolves the drag from t's down anchor to up, then walks
// containers (already given in document order) marking the touched
// element ranges selected via target. Containers outside [down, up] are
// cleared. It reports false if no down anchor was recorded.
func (t *Tracker) Rebuild(target SelectionTarget, containers []*node.Node, up Address, rule ClosingRule) bool {
	if !t.haveDown {
		return false
	}
	Rebuild(target, containers, t.down, up, rule)
	return true
}

// Rebuild is Tracker.Rebuild without drag-state bookkeeping, useful for a
// caller that already tracks its own two endpoints.
func Rebuild(target SelectionTarget, containers []*node.Node, start, end Address, rule ClosingRule) {
	si, sFound := indexOf(containers, start.Node)
	ei, eFound := indexOf(containers, end.Node)
	if sFound && eFound {
		if si > ei || (si == ei && start.Offset > end.Offset) {
			start, end, si, ei = end, start, ei, si
		}
	}
	lo, hi := si, ei
	if !sFound {
		lo = 0
	}
	if !eFound {
		hi = len(containers) - 1
	}
	for i, c := range containers {
		n := target.ElementCount(c)
		switch {
		case i < lo || i > hi:
			target.SetSelected(c, 0, 0)
		case i == lo && i == hi:
			target.SetSelected(c, clampOffset(start.Offset, n, rule), clampOffset(end.Offset, n, rule))
		case i == lo:
			target.SetSelected(c, clampOffset(start.Offset, n, rule), n)
		case i == hi:
			target.SetSelected(c, 0, clampOffset(end.Offset, n, rule))
		default:
			target.SetSelected(c, 0, n)
		}
	}
}

func clampOffset(offset, n int, rule ClosingRule) int {
	if offset == End || offset > n {
		if rule == TiesToStart {
			return 0
		}
		return n
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func indexOf(containers []*node.Node, n *node.Node) (int, bool) {
	for i, c := range containers {
		if c == n {
			return i, true
		}
	}
	return 0, false
}
