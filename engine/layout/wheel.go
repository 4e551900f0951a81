package layout

import (
	"time"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/tree"
)

// Stage is a sizing-wheel frame's current step (spec.md §4.2).
type Stage uint8

const (
	stageExtrinsicMain Stage = iota
	stageExtrinsic
	stageDoFlex
	stageVisitChildren
	stageIntrinsicMain
	stageDone
)

// maxRepeats bounds how many times a single frame may re-enter the wheel
// from stageIntrinsicMain before the wheel gives up on that subtree and
// moves on. Spec.md's own termination argument (each repeat strictly
// increases the count of validated slots, bounded by 2 axes x 4 slots per
// box) guarantees a small bound suffices in practice; this cap is a
// simplification of the "highest ancestor that can still make progress"
// heuristic, traded for a trivially-provable termination guarantee.
const maxRepeats = 4

// changeFlags carries the per-box change-propagation bits a frame is
// pushed with (spec.md §4.2's "change-propagation flags over the stack
// frame").
type changeFlags struct {
	parentChanged   [2]bool
	ancestorChanged [2]bool
}

type frame struct {
	b       *box.Box
	stage   Stage
	flags   changeFlags
	child   *tree.Node
	repeats int
}

// State is a suspended or in-progress sizing-wheel run: an explicit stack
// of frames standing in for the call stack a plain recursive walk would
// use, so a run can be interrupted between any two frame steps and
// resumed later from the exact same point (spec.md §5).
type State struct {
	stack   []*frame
	driver  InlineDriver
	timeout time.Duration
}

// NewState starts a sizing-wheel run rooted at root. driver may be nil if
// the tree contains no inline containers.
func NewState(root *box.Box, timeout time.Duration, driver InlineDriver) *State {
	return &State{
		stack:   []*frame{{b: root, stage: stageExtrinsicMain}},
		driver:  driver,
		timeout: timeout,
	}
}

// Done reports whether the run has finished (the frame stack is empty).
func (s *State) Done() bool { return len(s.stack) == 0 }

// Run advances the wheel, calling now() between frame steps to check the
// timeout. It returns true once the whole subtree is sized, false if it
// suspended early (call Run again with the same State to resume). now is
// injected rather than read from time.Now so tests can drive it
// deterministically.
func (s *State) Run(now func() time.Time) (bool, error) {
	start := now()
	for len(s.stack) > 0 {
		if s.timeout > 0 && now().Sub(start) > s.timeout {
			return false, nil
		}
		top := s.stack[len(s.stack)-1]
		boxDone, err := s.step(top)
		if err != nil {
			return false, err
		}
		if boxDone {
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	return true, nil
}

func (s *State) step(fr *frame) (bool, error) {
	switch fr.stage {
	case stageExtrinsicMain:
		applyChangeFlags(fr)
		fr.stage = stageExtrinsic
		return false, nil

	case stageExtrinsic:
		if err := s.resolveAxis(fr.b, box.Horizontal); err != nil {
			return false, err
		}
		if err := s.resolveAxis(fr.b, box.Vertical); err != nil {
			return false, err
		}
		fr.stage = stageDoFlex
		return false, nil

	case stageDoFlex:
		if !fr.b.Has(box.FlagFlexValid) {
			if err := s.distributeFlex(fr.b); err != nil {
				return false, err
			}
			fr.b.SetFlags(box.FlagFlexValid)
		}
		fr.stage = stageVisitChildren
		fr.child = fr.b.TreeNode().FirstChild()
		return false, nil

	case stageVisitChildren:
		if fr.child == nil {
			fr.stage = stageIntrinsicMain
			return false, nil
		}
		childNode := fr.child
		fr.child = fr.child.NextSibling()
		if child := box.AsBox(childNode); child != nil {
			s.stack = append(s.stack, &frame{
				b:     child,
				stage: stageExtrinsicMain,
				flags: childChangeFlags(fr.b, child),
			})
		}
		return false, nil

	case stageIntrinsicMain:
		if err := s.resolveIntrinsicMain(fr.b); err != nil {
			return false, err
		}
		if fr.repeats < maxRepeats && needsRepeat(fr.b) {
			fr.repeats++
			fr.stage = stageExtrinsicMain
			return false, nil
		}
		fr.b.SetFlags(box.FlagTreeValid)
		return true, nil
	}
	return true, nil
}

// applyChangeFlags clears a box's extrinsic slot when the change flags it
// was pushed with say its dependency source changed (spec.md §4.2 stage
// 1, "EXTRINSIC-main").
func applyChangeFlags(fr *frame) {
	for _, ax := range [2]box.Axis{box.Horizontal, box.Vertical} {
		if isFlexDistributed(fr.b, ax) {
			continue // DO-FLEX already set this slot authoritatively this pass
		}
		a := fr.b.Axis(ax)
		if fr.flags.parentChanged[ax] && dependsOnParent(fr.b, ax) {
			a.Invalidate(box.SlotExtrinsic)
		}
		if fr.flags.ancestorChanged[ax] && dependsOnAncestor(fr.b, ax) {
			a.Invalidate(box.SlotExtrinsic)
		}
	}
}

// childChangeFlags computes the change flags a child frame is pushed
// with: it sees "parent changed" if the parent's own extrinsic slot is
// freshly valid this pass, and "ancestor changed" inherited the same way
// so horizontal-grow descendants several levels down still notice a
// width change higher up the tree.
func childChangeFlags(parent, child *box.Box) changeFlags {
	var cf changeFlags
	for _, ax := range [2]box.Axis{box.Horizontal, box.Vertical} {
		_, ok := parent.Slot(ax, box.SlotExtrinsic)
		cf.parentChanged[ax] = ok
		cf.ancestorChanged[ax] = ok
	}
	return cf
}

// needsRepeat reports whether b's subtree still has invalid slots this
// box might now be able to compute, per spec.md §4.2's repeat-pass
// decision.
func needsRepeat(b *box.Box) bool {
	if !b.Has(box.FlagTreeValid) {
		return true
	}
	_, hok := b.Slot(box.Horizontal, box.SlotExtrinsic)
	_, vok := b.Slot(box.Vertical, box.SlotExtrinsic)
	return !hok || !vok
}

// resolveAxis resolves b's extrinsic slot on ax if not already valid
// (spec.md §4.2 stage 2, "EXTRINSIC").
func (s *State) resolveAxis(b *box.Box, ax box.Axis) error {
	a := b.Axis(ax)
	if _, ok := a.Get(box.SlotExtrinsic); ok {
		return nil
	}
	switch {
	case a.Mode == length.Absolute:
		b.SetSlot(ax, box.SlotExtrinsic, a.Ideal.Value)
	case a.Mode == length.Fractional:
		parent := b.Parent()
		if parent == nil {
			return box.ErrUnderspecified
		}
		pw, ok := parent.Slot(ax, box.SlotExtrinsic)
		if !ok {
			return nil // parent not ready yet; resolved on a repeat pass
		}
		b.SetSlot(ax, box.SlotExtrinsic, dimen.Dimen(float64(pw)*float64(a.Ideal.Value)/1000))
	case a.Mode == length.Grow && ax == box.Vertical:
		parent := b.Parent()
		if parent == nil {
			return box.ErrUnderspecified
		}
		ph, ok := parent.Slot(ax, box.SlotExtrinsic)
		if !ok {
			return nil
		}
		b.SetSlot(ax, box.SlotExtrinsic, ph)
	default: // grow (horizontal), auto, shrink
		if err := s.resolveFromContent(b, ax); err != nil {
			return err
		}
	}
	notifyExtrinsicChanged(b, ax)
	return nil
}

// resolveFromContent implements the content-driven branch of EXTRINSIC:
// copy from intrinsic (or preferred, at the top of a shrink/grow cycle),
// running a bottom-up intrinsic pass first if needed.
func (s *State) resolveFromContent(b *box.Box, ax box.Axis) error {
	if topOfCycle(b, ax) {
		if pref, ok := b.Slot(ax, box.SlotPreferred); ok {
			b.SetSlot(ax, box.SlotExtrinsic, pref)
			return nil
		}
		return box.ErrCyclicDependency
	}
	v, ok := b.Slot(ax, box.SlotIntrinsic)
	if !ok {
		if err := s.measureIntrinsicSubtree(b); err != nil {
			return err
		}
		v, ok = b.Slot(ax, box.SlotIntrinsic)
		if !ok {
			return box.ErrUnderspecified
		}
	}
	b.SetSlot(ax, box.SlotExtrinsic, v)
	return nil
}

// notifyExtrinsicChanged applies spec.md §4.3's flag-propagation rules
// that fire when an extrinsic slot is (re)computed.
func notifyExtrinsicChanged(b *box.Box, ax box.Axis) {
	if isInlineContainer(b) && ax == box.Horizontal {
		b.ClearFlags(box.FlagSameParagraph)
		b.Axis(box.Vertical).Invalidate(box.SlotIntrinsic)
		b.Axis(box.Vertical).Invalidate(box.SlotExtrinsic)
	}
	parent := b.Parent()
	if parent == nil {
		return
	}
	if dependsOnChildren(parent, ax) {
		parent.ModifyClear(box.FlagTreeValid, false)
		parent.Axis(ax).Invalidate(box.SlotIntrinsic)
	}
	if ax == parent.MainAxis && hasFlexibleChild(parent) {
		parent.ClearFlags(box.FlagFlexValid)
	}
}
