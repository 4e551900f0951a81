package layout

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
)

// unbounded is the ancestor clip rect a root box starts with: every edge at
// +-infinity, i.e. "no clipping yet".
func unbounded() dimen.Rect {
	return dimen.RectFromCorners(
		dimen.Point{X: -dimen.Infinity, Y: -dimen.Infinity},
		dimen.Point{X: dimen.Infinity, Y: dimen.Infinity},
	)
}

// Clip assigns every box in root's subtree its effective clip rectangle and
// depth (spec.md §4.6 "Clip pass"). It must run after Position, since clip
// boxes are computed from document-space geometry. root is clipped against
// ancestorClip (pass unbounded() for a true root with no outer clip) at
// ancestorDepth.
func Clip(root *box.Box, ancestorClip dimen.Rect, ancestorDepth int32) {
	clipChildren(root, ancestorClip, ancestorDepth)
}

func clipChildren(b *box.Box, ancestorClip dimen.Rect, ancestorDepth int32) {
	b.Depth = ancestorDepth
	clip := ancestorClip
	if b.ClipEdges != 0 {
		if r, ok := b.ClipBoxRect().Intersect(ancestorClip); ok {
			clip = r
		} else {
			clip = dimen.Rect{} // disjoint from ancestor clip: nothing of this subtree is visible
		}
	}
	b.ClipRect = clip
	childDepth := ancestorDepth + b.DepthInterval
	for _, c := range directChildren(b) {
		clipChildren(c, clip, childDepth)
	}
}
