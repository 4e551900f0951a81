package layout_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/layout"
)

func sizedChild(w, h dimen.Dimen, align box.Alignment) *box.Box {
	c := box.New()
	c.SetSlot(box.Horizontal, box.SlotExtrinsic, w)
	c.SetSlot(box.Vertical, box.SlotExtrinsic, h)
	c.Alignment = align
	return c
}

func TestPositionArrangeStartPacksFromOrigin(t *testing.T) {
	root := box.New()
	root.Pos = dimen.Point{X: 10 * dimen.BP, Y: 20 * dimen.BP}
	root.SetSlot(box.Horizontal, box.SlotExtrinsic, 600*dimen.BP)
	root.SetSlot(box.Vertical, box.SlotExtrinsic, 100*dimen.BP)

	c1 := sizedChild(150*dimen.BP, 20*dimen.BP, box.AlignStart)
	c2 := sizedChild(300*dimen.BP, 100*dimen.BP, box.AlignStretch)
	root.TreeNode().AppendChild(c1.TreeNode())
	root.TreeNode().AppendChild(c2.TreeNode())

	layout.Position(root, nil)

	if c1.Pos.X != 10*dimen.BP {
		t.Errorf("c1.X = %v, want %v", c1.Pos.X, 10*dimen.BP)
	}
	if c2.Pos.X != 160*dimen.BP {
		t.Errorf("c2.X = %v, want %v (after c1's 150bp width)", c2.Pos.X, 160*dimen.BP)
	}
	if c1.Pos.Y != 20*dimen.BP {
		t.Errorf("c1.Y = %v, want %v (AlignStart => parent's top)", c1.Pos.Y, 20*dimen.BP)
	}
}

func TestPositionArrangeMiddleCentersOnSlack(t *testing.T) {
	root := box.New()
	root.SetSlot(box.Horizontal, box.SlotExtrinsic, 600*dimen.BP)
	root.SetSlot(box.Vertical, box.SlotExtrinsic, 100*dimen.BP)
	root.Arrangement = box.ArrangeMiddle

	c1 := sizedChild(100*dimen.BP, 10*dimen.BP, box.AlignEnd)
	root.TreeNode().AppendChild(c1.TreeNode())

	layout.Position(root, nil)

	wantX := 250 * dimen.BP // (600-100)/2
	if c1.Pos.X != wantX {
		t.Errorf("c1.X = %v, want %v", c1.Pos.X, wantX)
	}
	wantY := 90 * dimen.BP // 100-10, AlignEnd
	if c1.Pos.Y != wantY {
		t.Errorf("c1.Y = %v, want %v", c1.Pos.Y, wantY)
	}
}

func TestPositionRecursesIntoChildren(t *testing.T) {
	root := box.New()
	root.SetSlot(box.Horizontal, box.SlotExtrinsic, 400*dimen.BP)
	root.SetSlot(box.Vertical, box.SlotExtrinsic, 200*dimen.BP)

	parent := sizedChild(400*dimen.BP, 200*dimen.BP, box.AlignStart)
	grandchild := sizedChild(50*dimen.BP, 50*dimen.BP, box.AlignMiddle)
	root.TreeNode().AppendChild(parent.TreeNode())
	parent.TreeNode().AppendChild(grandchild.TreeNode())

	layout.Position(root, nil)

	if parent.Pos.X != 0 || parent.Pos.Y != 0 {
		t.Fatalf("parent not positioned at root origin: %v", parent.Pos)
	}
	if grandchild.Pos.X != 0 {
		t.Errorf("grandchild.X = %v, want 0 (AlignStart unaffected on major axis)", grandchild.Pos.X)
	}
	wantY := (200 - 50) * dimen.BP / 2
	if grandchild.Pos.Y != wantY {
		t.Errorf("grandchild.Y = %v, want %v (AlignMiddle within parent's content height)", grandchild.Pos.Y, wantY)
	}
}
