package layout_test

import (
	"testing"
	"time"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/layout"
)

func growChild(grow float64) *box.Box {
	c := box.New()
	c.H.Ideal = length.NewGrow()
	c.H.Grow = grow
	return c
}

// TestFlexDistributionMatchesS1 reproduces spec.md §8's S1 scenario: a
// horizontal root of width 600 with three children of grow factor 1, 2, 1
// ends up with widths 150, 300, 150.
func TestFlexDistributionMatchesS1(t *testing.T) {
	root := box.New()
	root.H.Ideal = length.NewAbsolute(600 * dimen.BP)
	root.V.Ideal = length.NewAbsolute(100 * dimen.BP)

	c1, c2, c3 := growChild(1), growChild(2), growChild(1)
	root.TreeNode().AppendChild(c1.TreeNode())
	root.TreeNode().AppendChild(c2.TreeNode())
	root.TreeNode().AppendChild(c3.TreeNode())

	st := layout.NewState(root, 0, nil)
	done, err := st.Run(time.Now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !done {
		t.Fatalf("expected a zero-timeout run to complete in one call")
	}

	want := []dimen.Dimen{150 * dimen.BP, 300 * dimen.BP, 150 * dimen.BP}
	got := []*box.Box{c1, c2, c3}
	for i, c := range got {
		w, ok := c.Slot(box.Horizontal, box.SlotExtrinsic)
		if !ok {
			t.Fatalf("child %d: width not resolved", i)
		}
		if w != want[i] {
			t.Errorf("child %d: want width %v, got %v", i, want[i], w)
		}
	}
}

// TestAbsoluteBoxResolvesWithoutChildren exercises the simplest path
// through the wheel: a childless, fully-absolute box.
func TestAbsoluteBoxResolvesWithoutChildren(t *testing.T) {
	root := box.New()
	root.H.Ideal = length.NewAbsolute(200 * dimen.BP)
	root.V.Ideal = length.NewAbsolute(50 * dimen.BP)

	st := layout.NewState(root, 0, nil)
	done, err := st.Run(time.Now)
	if err != nil || !done {
		t.Fatalf("Run() = (%v, %v), want (true, nil)", done, err)
	}
	w, _ := root.Slot(box.Horizontal, box.SlotExtrinsic)
	h, _ := root.Slot(box.Vertical, box.SlotExtrinsic)
	if w != 200*dimen.BP || h != 50*dimen.BP {
		t.Errorf("got w=%v h=%v, want 200bp x 50bp", w, h)
	}
}

// TestRunSuspendsOnTimeoutAndResumes drives the wheel with a fake clock
// that reports an elapsed timeout on the first check, forcing Run to
// suspend; a second Run call with a clock that never advances must then finish
// with the same result a single uninterrupted run would have produced
// (spec.md §5).
func TestRunSuspendsOnTimeoutAndResumes(t *testing.T) {
	root := box.New()
	root.H.Ideal = length.NewAbsolute(600 * dimen.BP)
	root.V.Ideal = length.NewAbsolute(100 * dimen.BP)
	c1, c2, c3 := growChild(1), growChild(2), growChild(1)
	root.TreeNode().AppendChild(c1.TreeNode())
	root.TreeNode().AppendChild(c2.TreeNode())
	root.TreeNode().AppendChild(c3.TreeNode())

	st := layout.NewState(root, time.Nanosecond, nil)
	base := time.Now()
	calls := 0
	clock := func() time.Time {
		calls++
		if calls <= 2 {
			return base
		}
		return base.Add(time.Hour) // blows past the 1ns timeout on the first in-loop check
	}
	done, err := st.Run(clock)
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if done {
		t.Fatalf("expected the first Run to suspend before finishing")
	}
	if st.Done() {
		t.Fatalf("State.Done() should be false while suspended")
	}

	done, err = st.Run(func() time.Time { return base })
	if err != nil {
		t.Fatalf("resumed Run returned error: %v", err)
	}
	if !done {
		t.Fatalf("expected the resumed Run to finish")
	}
	w1, _ := c1.Slot(box.Horizontal, box.SlotExtrinsic)
	w2, _ := c2.Slot(box.Horizontal, box.SlotExtrinsic)
	w3, _ := c3.Slot(box.Horizontal, box.SlotExtrinsic)
	if w1 != 150*dimen.BP || w2 != 300*dimen.BP || w3 != 150*dimen.BP {
		t.Errorf("got widths %v, %v, %v, want 150bp, 300bp, 150bp", w1, w2, w3)
	}
}
