package hittest_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/hittest"
	"github.com/npillmayer-style/quipu/engine/node"
)

func textBox(x, y, w, h dimen.Dimen, first, last int, owner *node.Node) *box.Box {
	b := box.New()
	b.Pos = dimen.Point{X: x, Y: y}
	b.SetSlot(box.Horizontal, box.SlotExtrinsic, w)
	b.SetSlot(box.Vertical, box.SlotExtrinsic, h)
	b.FirstElement, b.LastElement = first, last
	b.Owner = owner
	return b
}

type stubCaretSource struct {
	bounds map[*box.Box][]dimen.Dimen
}

func (s stubCaretSource) CharBoundaries(b *box.Box) ([]dimen.Dimen, bool) {
	bounds, ok := s.bounds[b]
	return bounds, ok
}

func TestResolveAnchorSplitsTextBoxAtNearestCharBoundary(t *testing.T) {
	grid := box.NewGrid()
	para := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	tb := textBox(0, 0, 40*dimen.BP, 12*dimen.BP, 3, 7, para)
	grid.Insert(tb)

	src := stubCaretSource{bounds: map[*box.Box][]dimen.Dimen{
		tb: {0, 10 * dimen.BP, 20 * dimen.BP, 30 * dimen.BP, 40 * dimen.BP},
	}}

	addr, ok := hittest.ResolveAnchor(grid, src, 22*dimen.BP, 0, 100*dimen.BP, 6*dimen.BP, 1, hittest.TiesToStart)
	if !ok {
		t.Fatal("expected an anchor to resolve")
	}
	if addr.Node != para {
		t.Errorf("expected canonicalization to the paragraph container, got %v", addr.Node)
	}
	if addr.Offset != 3+2 {
		t.Errorf("expected offset %d (nearest boundary at x=20bp), got %d", 3+2, addr.Offset)
	}
}

func TestResolveAnchorSplitsNonTextBoxAtMidpoint(t *testing.T) {
	grid := box.NewGrid()
	owner := node.New(node.TypeImage, node.LayoutInline)
	ib := textBox(0, 0, 20*dimen.BP, 20*dimen.BP, 9, 10, owner)
	grid.Insert(ib)

	addr, ok := hittest.ResolveAnchor(grid, nil, 18*dimen.BP, 0, 100*dimen.BP, 10*dimen.BP, 1, hittest.TiesToStart)
	if !ok {
		t.Fatal("expected an anchor to resolve")
	}
	if addr.Offset != 10 {
		t.Errorf("expected the after-split offset (LastElement=10) for a point past midpoint, got %d", addr.Offset)
	}
}

type fakeTarget struct {
	ranges map[*node.Node][2]int
	counts map[*node.Node]int
}

func (f *fakeTarget) ElementCount(n *node.Node) int { return f.counts[n] }
func (f *fakeTarget) SetSelected(n *node.Node, from, to int) {
	f.ranges[n] = [2]int{from, to}
}

func TestRebuildSelectsFullMiddleContainersAndClampsEnds(t *testing.T) {
	a := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	b := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	c := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	containers := []*node.Node{a, b, c}

	target := &fakeTarget{
		ranges: map[*node.Node][2]int{},
		counts: map[*node.Node]int{a: 10, b: 8, c: 12},
	}

	start := hittest.Address{Node: a, Offset: 4}
	end := hittest.Address{Node: c, Offset: 5}
	hittest.Rebuild(target, containers, start, end, hittest.TiesToStart)

	if target.ranges[a] != [2]int{4, 10} {
		t.Errorf("start container: got %v, want [4 10]", target.ranges[a])
	}
	if target.ranges[b] != [2]int{0, 8} {
		t.Errorf("middle container: got %v, want [0 8]", target.ranges[b])
	}
	if target.ranges[c] != [2]int{0, 5} {
		t.Errorf("end container: got %v, want [0 5]", target.ranges[c])
	}
}

func TestRebuildSwapsReversedEndpoints(t *testing.T) {
	a := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	b := node.New(node.TypeParagraph, node.LayoutInlineContainer)
	containers := []*node.Node{a, b}
	target := &fakeTarget{ranges: map[*node.Node][2]int{}, counts: map[*node.Node]int{a: 5, b: 5}}

	// Dragged from b back up to a: end precedes start in document order.
	hittest.Rebuild(target, containers, hittest.Address{Node: b, Offset: 2}, hittest.Address{Node: a, Offset: 1}, hittest.TiesToStart)

	if target.ranges[a] != [2]int{1, 5} {
		t.Errorf("expected reordered start container a to select [1,5], got %v", target.ranges[a])
	}
	if target.ranges[b] != [2]int{0, 2} {
		t.Errorf("expected reordered end container b to select [0,2], got %v", target.ranges[b])
	}
}
