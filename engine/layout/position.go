package layout

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
)

// Position places every descendant of root within its parent's content
// rectangle (spec.md §4.6 "Position pass"). root's own Pos must already
// be set by the caller (the document's viewport origin, or a containing
// scroll region); Position is a pure top-down walk assuming sizing has
// already resolved every box's extrinsic slots. grid may be nil to skip
// spatial-index maintenance (useful in tests that don't exercise
// queries).
func Position(root *box.Box, grid *box.Grid) {
	positionChildren(root, grid)
}

func positionChildren(b *box.Box, grid *box.Grid) {
	children := directChildren(b)
	if len(children) == 0 {
		return
	}
	major, minor := b.MainAxis, crossAxis(b.MainAxis)
	majorOrigin := contentOrigin(b, major)
	minorOrigin := contentOrigin(b, minor)
	contentMajor, _ := b.Slot(major, box.SlotExtrinsic)
	contentMinor, _ := b.Slot(minor, box.SlotExtrinsic)

	var sumOuter dimen.Dimen
	for _, c := range children {
		w, _ := c.Slot(major, box.SlotExtrinsic)
		sumOuter += outerSize(c, major, w)
	}
	cursor := majorOrigin + arrangementOffset(b.Arrangement, contentMajor-sumOuter)

	for _, c := range children {
		ma := c.Axis(major)
		cursor += ma.Margin[0] + ma.Padding[0]
		setPos(c, major, cursor)
		w, _ := c.Slot(major, box.SlotExtrinsic)
		cursor += w + ma.Padding[1] + ma.Margin[1]

		h, _ := c.Slot(minor, box.SlotExtrinsic)
		minorSlack := contentMinor - outerSize(c, minor, h)
		na := c.Axis(minor)
		setPos(c, minor, minorOrigin+alignmentOffset(c.Alignment, minorSlack)+na.Margin[0]+na.Padding[0])

		if grid != nil {
			grid.Rekey(c)
		}
		positionChildren(c, grid)
	}
}

func contentOrigin(b *box.Box, ax box.Axis) dimen.Dimen {
	if ax == box.Horizontal {
		return b.Pos.X
	}
	return b.Pos.Y
}

func setPos(b *box.Box, ax box.Axis, v dimen.Dimen) {
	if ax == box.Horizontal {
		b.Pos.X = v
	} else {
		b.Pos.Y = v
	}
}

// arrangementOffset resolves a major-axis Arrangement against the total
// slack, per spec.md §4.6: children are packed contiguously starting at
// this single offset, never spread out with inter-child gaps.
func arrangementOffset(a box.Arrangement, slack dimen.Dimen) dimen.Dimen {
	switch a {
	case box.ArrangeMiddle:
		return slack / 2
	case box.ArrangeEnd:
		return slack
	default:
		return 0
	}
}

// alignmentOffset resolves a child's own minor-axis Alignment against its
// slack within the parent's content box.
func alignmentOffset(a box.Alignment, slack dimen.Dimen) dimen.Dimen {
	switch a {
	case box.AlignMiddle:
		return slack / 2
	case box.AlignEnd:
		return slack
	default: // AlignStart, AlignStretch (stretch is resolved at sizing time, not here)
		return 0
	}
}
