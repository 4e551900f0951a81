package layout

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/box"
)

// dependsOnParent reports whether b's extrinsic size on ax can only be
// resolved once the parent's own extrinsic size on some axis is known
// (spec.md §4.2): true for fractional and for vertical grow. It reports
// false for every absolute box, including one sized by its parent's
// DO-FLEX stage; such a box keeps the size DO-FLEX wrote until DO-FLEX
// runs again.
func dependsOnParent(b *box.Box, ax box.Axis) bool {
	mode := b.Axis(ax).Mode
	if mode == length.Fractional {
		return true
	}
	if mode == length.Grow && ax == box.Vertical {
		return true
	}
	return false
}

// dependsOnAncestor reports whether b's extrinsic size on ax can only be
// resolved once some ancestor beyond the immediate parent supplies a
// bound — true only for horizontal grow, which climbs until it finds a
// defined width.
func dependsOnAncestor(b *box.Box, ax box.Axis) bool {
	return b.Axis(ax).Mode == length.Grow && ax == box.Horizontal
}

// dependsOnChildren reports whether b's extrinsic size on ax is computed
// bottom-up from its children (auto, shrink, or horizontal grow used as
// "fit content" when no ancestor bound is in scope).
func dependsOnChildren(b *box.Box, ax box.Axis) bool {
	mode := b.Axis(ax).Mode
	return mode == length.Auto || mode == length.Shrink ||
		(mode == length.Grow && ax == box.Horizontal)
}

// topOfCycle reports whether b is the top of a shrink/grow cycle: b is
// shrink-sized on ax and some descendant grows on the same axis with no
// max bound, so its own content size can never settle (spec.md §4.2's
// cycle-detection rule). Descendants are walked only until the first
// nested shrink-sized box, which re-bounds the cycle for its own subtree.
func topOfCycle(b *box.Box, ax box.Axis) bool {
	if b.Axis(ax).Mode != length.Shrink {
		return false
	}
	return hasUnboundedGrowDescendant(b, ax)
}

func hasUnboundedGrowDescendant(b *box.Box, ax box.Axis) bool {
	for c := box.AsBox(b.TreeNode().FirstChild()); c != nil; c = box.AsBox(c.TreeNode().NextSibling()) {
		a := c.Axis(ax)
		if a.Mode == length.Grow && a.Max == 0 {
			return true
		}
		if a.Mode == length.Shrink {
			continue // re-bounded by the nested shrink box; not our cycle
		}
		if hasUnboundedGrowDescendant(c, ax) {
			return true
		}
	}
	return false
}

// InlineDriver is the minimal interface the sizing wheel needs from
// whatever owns an inline container's paragraph elements and line
// breaking (document.go, wiring engine/khipu, .../knuthplass and
// engine/inline together). It is injected rather than imported directly
// so this package stays agnostic of the paragraph pipeline's concrete
// types, mirroring the teacher's formatting-context interface split
// between block and inline contexts.
type InlineDriver interface {
	// PreferredWidth returns an inline container's max-content width:
	// the width of the widest line when its paragraph is broken at
	// infinite width (spec.md §4.4 "preferred width & height").
	PreferredWidth(b *box.Box) (dimen.Dimen, error)
	// Break performs the final line break at maxWidth and synthesizes
	// line/placement-group boxes as children of b (engine/inline),
	// returning the resulting content height.
	Break(b *box.Box, maxWidth dimen.Dimen) (dimen.Dimen, error)
}

// isInlineContainer reports whether b is the primary box of an inline
// container node, recognized structurally via its Owner back-pointer
// rather than by importing engine/node, keeping this package's only
// paragraph-pipeline dependency the injected InlineDriver.
func isInlineContainer(b *box.Box) bool {
	ic, ok := b.Owner.(interface{ IsInlineContainer() bool })
	return ok && ic.IsInlineContainer()
}
