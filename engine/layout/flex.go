package layout

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/box"
)

// effectiveGrow returns a box's flex-grow factor along ax: its declared
// Grow factor if set, else 1 if it is itself in Grow mode on ax (a plain
// grow-to-fill box participates in its parent's distribution with the
// default factor), else 0.
func effectiveGrow(b *box.Box, ax box.Axis) float64 {
	a := b.Axis(ax)
	if a.Grow > 0 {
		return a.Grow
	}
	if a.Mode == length.Grow {
		return 1
	}
	return 0
}

func effectiveShrink(b *box.Box, ax box.Axis) float64 {
	return b.Axis(ax).Shrink
}

func directChildren(b *box.Box) []*box.Box {
	var children []*box.Box
	for tn := b.TreeNode().FirstChild(); tn != nil; tn = tn.NextSibling() {
		if c := box.AsBox(tn); c != nil {
			children = append(children, c)
		}
	}
	return children
}

// isFlexDistributed reports whether b's extrinsic size on ax was set
// directly by its parent's DO-FLEX stage (spec.md §4.2 stage 3) rather
// than being resolved from its own content or an ancestor bound: true
// when b grows along its parent's major axis and the parent's flex
// distribution is current. Callers that would otherwise invalidate a
// content- or ancestor-dependent extrinsic slot must skip boxes for
// which this holds, or they would immediately stomp the value DO-FLEX
// just computed.
func isFlexDistributed(b *box.Box, ax box.Axis) bool {
	parent := b.Parent()
	if parent == nil || ax != parent.MainAxis {
		return false
	}
	return b.Axis(ax).Mode == length.Grow && parent.Has(box.FlagFlexValid)
}

func hasFlexibleChild(b *box.Box) bool {
	for _, c := range directChildren(b) {
		if effectiveGrow(c, b.MainAxis) > 0 || effectiveShrink(c, b.MainAxis) > 0 {
			return true
		}
	}
	return false
}

// distributeFlex implements spec.md §4.2 stage 3 ("DO-FLEX"): basis sizes
// come from each child's preferred size (falling back to its ideal value
// when not yet measured), slack is parent_major - sum(basis), and it is
// distributed proportional to grow factors (slack > 0) or shrink factors
// (slack < 0). Skips silently if the parent's own major-axis extrinsic
// isn't resolved yet; a later repeat pass retries.
func (s *State) distributeFlex(b *box.Box) error {
	if !hasFlexibleChild(b) {
		return nil
	}
	ax := b.MainAxis
	parentMajor, ok := b.Slot(ax, box.SlotExtrinsic)
	if !ok {
		return nil
	}
	children := directChildren(b)
	basis := make([]dimen.Dimen, len(children))
	var sumBasis dimen.Dimen
	var sumGrow, sumShrink float64
	for i, c := range children {
		v, ok := c.Slot(ax, box.SlotPreferred)
		if !ok {
			v = c.Axis(ax).Ideal.Value
		}
		basis[i] = v
		sumBasis += v
		sumGrow += effectiveGrow(c, ax)
		sumShrink += effectiveShrink(c, ax)
	}
	slack := parentMajor - sumBasis
	for i, c := range children {
		size := basis[i]
		switch {
		case slack > 0 && sumGrow > 0:
			size += dimen.Dimen(float64(slack) * effectiveGrow(c, ax) / sumGrow)
		case slack < 0 && sumShrink > 0:
			size += dimen.Dimen(float64(slack) * effectiveShrink(c, ax) / sumShrink)
		}
		if size < 0 {
			size = 0
		}
		c.Axis(ax).Set(box.SlotExtrinsic, size)
	}
	return nil
}
