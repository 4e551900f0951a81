package layout

import (
	"time"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
)

// resolveIntrinsicMain implements spec.md §4.2 stage 5 ("INTRINSIC-main"):
// for an inline container it drives paragraph measurement and breaking
// through the injected InlineDriver; for any other box it aggregates
// already-sized children into its own preferred/intrinsic slots (major
// axis summed, minor axis maxed, per spec.md §4.2).
func (s *State) resolveIntrinsicMain(b *box.Box) error {
	if isInlineContainer(b) {
		return s.resolveInlineIntrinsic(b)
	}
	children := directChildren(b)
	major, minor := b.MainAxis, crossAxis(b.MainAxis)
	var majorSum, minorMax, majorSumPref, minorMaxPref dimen.Dimen
	for _, c := range children {
		mw, ok := c.Slot(major, box.SlotExtrinsic)
		if !ok {
			continue // child not sized yet; its contribution is picked up on a repeat pass
		}
		cw, _ := c.Slot(minor, box.SlotExtrinsic)
		majorSum += outerSize(c, major, mw)
		if o := outerSize(c, minor, cw); o > minorMax {
			minorMax = o
		}

		pw, pok := c.Slot(major, box.SlotPreferred)
		if !pok {
			pw = mw
		}
		majorSumPref += outerSize(c, major, pw)
		cwp, cpok := c.Slot(minor, box.SlotPreferred)
		if !cpok {
			cwp = cw
		}
		if o := outerSize(c, minor, cwp); o > minorMaxPref {
			minorMaxPref = o
		}
	}
	setIntrinsicPreferred(b, major, majorSum, majorSumPref)
	setIntrinsicPreferred(b, minor, minorMax, minorMaxPref)
	return nil
}

// resolveInlineIntrinsic drives the paragraph pipeline for an inline
// container's box (spec.md §4.4's "preferred width & height" and "final
// line list"). The preferred width is measured once and cached; the
// final break only runs once the container's own extrinsic width is
// known, since line breaking needs a concrete max width to break against.
func (s *State) resolveInlineIntrinsic(b *box.Box) error {
	if s.driver == nil {
		return box.ErrUnderspecified
	}
	if _, ok := b.Slot(box.Horizontal, box.SlotPreferred); !ok {
		pw, err := s.driver.PreferredWidth(b)
		if err != nil {
			return err
		}
		b.Axis(box.Horizontal).Set(box.SlotPreferred, pw)
	}
	if _, ok := b.Slot(box.Vertical, box.SlotIntrinsic); ok {
		return nil
	}
	width, ok := b.Slot(box.Horizontal, box.SlotExtrinsic)
	if !ok {
		pw, _ := b.Slot(box.Horizontal, box.SlotPreferred)
		b.Axis(box.Horizontal).Set(box.SlotIntrinsic, pw)
		return nil
	}
	height, err := s.driver.Break(b, width)
	if err != nil {
		return err
	}
	b.Axis(box.Vertical).Set(box.SlotIntrinsic, height)
	b.Axis(box.Vertical).Set(box.SlotPreferred, height)
	return nil
}

// measureIntrinsicSubtree runs a full, non-suspendable sizing pass over
// each of b's not-yet-sized children (or drives the inline pipeline
// directly for b itself if it is an inline container), then aggregates.
// This is a deliberate simplification of spec.md §4.2's "jump to
// INTRINSIC-main with a saved return stage": a shrink/auto/content-driven
// box's bottom-up measurement pass runs to completion once started rather
// than interleaving with the main suspend/resume stack, trading finer
// resumability inside a single shrink-to-fit subtree for a much simpler
// state machine. The top-level Run loop can still suspend between
// sibling subtrees.
func (s *State) measureIntrinsicSubtree(b *box.Box) error {
	if isInlineContainer(b) {
		return s.resolveInlineIntrinsic(b)
	}
	for _, c := range directChildren(b) {
		_, hok := c.Slot(box.Horizontal, box.SlotExtrinsic)
		_, vok := c.Slot(box.Vertical, box.SlotExtrinsic)
		if hok && vok {
			continue
		}
		nested := NewState(c, 0, s.driver)
		if _, err := nested.Run(zeroClock); err != nil {
			return err
		}
	}
	return s.resolveIntrinsicMain(b)
}

// zeroClock stands in for time.Now in nested, non-suspendable sizing
// passes: with timeout 0 the Run loop never checks it, so any fixed value
// is safe and the nested pass behaves as plain recursion.
func zeroClock() time.Time { return time.Time{} }

func crossAxis(ax box.Axis) box.Axis {
	if ax == box.Horizontal {
		return box.Vertical
	}
	return box.Horizontal
}

func outerSize(b *box.Box, ax box.Axis, content dimen.Dimen) dimen.Dimen {
	a := b.Axis(ax)
	return content + a.Padding[0] + a.Padding[1] + a.Margin[0] + a.Margin[1]
}

func setIntrinsicPreferred(b *box.Box, ax box.Axis, intrinsic, preferred dimen.Dimen) {
	a := b.Axis(ax)
	a.Set(box.SlotIntrinsic, intrinsic)
	a.Set(box.SlotPreferred, preferred)
	if dependsOnChildren(b, ax) && !isFlexDistributed(b, ax) {
		a.Invalidate(box.SlotExtrinsic)
	}
}
