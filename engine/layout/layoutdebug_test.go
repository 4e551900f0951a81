package layout_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/layout"
	"github.com/npillmayer-style/quipu/engine/node"
)

func TestToGraphVizEmitsOneNodePerBoxAndEdgesForChildren(t *testing.T) {
	root := box.New()
	n := node.New(node.TypeHBox, node.LayoutBlock)
	root.Owner = n
	root.SetSlot(box.Horizontal, box.SlotExtrinsic, 100*dimen.BP)
	root.SetSlot(box.Vertical, box.SlotExtrinsic, 50*dimen.BP)

	child := box.New()
	child.SetSlot(box.Horizontal, box.SlotExtrinsic, 40*dimen.BP)
	child.SetSlot(box.Vertical, box.SlotExtrinsic, 20*dimen.BP)
	root.TreeNode().AppendChild(child.TreeNode())

	var buf bytes.Buffer
	layout.ToGraphViz(root, &buf)
	out := buf.String()

	if !strings.HasPrefix(out, "digraph g {") {
		t.Fatalf("expected a DOT digraph header, got %q", out)
	}
	if strings.Count(out, "shape=box") != 2 {
		t.Errorf("expected one node per box (2 boxes), got output:\n%s", out)
	}
	if !strings.Contains(out, "->") {
		t.Errorf("expected an edge between root and child, got output:\n%s", out)
	}
	if !strings.Contains(out, "hbox") {
		t.Errorf("expected the owner's element type in the label, got output:\n%s", out)
	}
}
