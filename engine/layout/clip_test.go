package layout_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/layout"
)

func placedBox(x, y, w, h dimen.Dimen) *box.Box {
	b := box.New()
	b.Pos = dimen.Point{X: x, Y: y}
	b.SetSlot(box.Horizontal, box.SlotExtrinsic, w)
	b.SetSlot(box.Vertical, box.SlotExtrinsic, h)
	return b
}

func TestClipWithoutEdgesInheritsAncestorRectAndDepth(t *testing.T) {
	root := placedBox(0, 0, 500*dimen.BP, 500*dimen.BP)
	child := placedBox(10*dimen.BP, 10*dimen.BP, 50*dimen.BP, 50*dimen.BP)
	root.TreeNode().AppendChild(child.TreeNode())
	root.DepthInterval = 1

	ancestor := dimen.Rect{TopL: dimen.Point{X: 0, Y: 0}, W: 1000 * dimen.BP, H: 1000 * dimen.BP}
	layout.Clip(root, ancestor, 5)

	if root.Depth != 5 {
		t.Errorf("root.Depth = %v, want 5", root.Depth)
	}
	if root.ClipRect != ancestor {
		t.Errorf("root.ClipRect = %v, want inherited %v (no ClipEdges set)", root.ClipRect, ancestor)
	}
	if child.Depth != 6 {
		t.Errorf("child.Depth = %v, want 6 (root.Depth + DepthInterval)", child.Depth)
	}
	if child.ClipRect != ancestor {
		t.Errorf("child.ClipRect = %v, want inherited %v", child.ClipRect, ancestor)
	}
}

func TestClipIntersectsOwnClipBoxWithAncestor(t *testing.T) {
	root := placedBox(0, 0, 100*dimen.BP, 100*dimen.BP)
	root.ClipSelector = box.ClipContent
	root.ClipEdges = box.ClipAll

	ancestor := dimen.Rect{TopL: dimen.Point{X: 20 * dimen.BP, Y: 20 * dimen.BP}, W: 1000 * dimen.BP, H: 1000 * dimen.BP}
	layout.Clip(root, ancestor, 0)

	want := dimen.Rect{TopL: dimen.Point{X: 20 * dimen.BP, Y: 20 * dimen.BP}, W: 80 * dimen.BP, H: 80 * dimen.BP}
	if root.ClipRect != want {
		t.Errorf("root.ClipRect = %v, want %v (own content rect intersected with ancestor)", root.ClipRect, want)
	}
}

func TestClipDisjointFromAncestorYieldsEmptyRect(t *testing.T) {
	root := placedBox(0, 0, 10*dimen.BP, 10*dimen.BP)
	root.ClipSelector = box.ClipContent
	root.ClipEdges = box.ClipAll

	ancestor := dimen.Rect{TopL: dimen.Point{X: 500 * dimen.BP, Y: 500 * dimen.BP}, W: 10 * dimen.BP, H: 10 * dimen.BP}
	layout.Clip(root, ancestor, 0)

	if root.ClipRect != (dimen.Rect{}) {
		t.Errorf("root.ClipRect = %v, want zero rect when disjoint from ancestor clip", root.ClipRect)
	}
}
