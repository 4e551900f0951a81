package node_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/node"
)

func TestAppendChildAndWalk(t *testing.T) {
	root := node.New(node.TypeBasic, node.LayoutBlock)
	child := node.New(node.TypeText, node.LayoutInline)
	root.AppendChild(child)
	if root.FirstChild() != child {
		t.Fatalf("expected child to be root's first child")
	}
	if child.Parent() != root {
		t.Fatalf("expected root to be child's parent")
	}
}

func TestHasClass(t *testing.T) {
	n := node.New(node.TypeBasic, node.LayoutBlock)
	n.Classes = []string{"highlighted", "active"}
	if !n.HasClass("active") {
		t.Errorf("expected HasClass(active) to be true")
	}
	if n.HasClass("missing") {
		t.Errorf("expected HasClass(missing) to be false")
	}
}

func TestHitChainMarkAndPrune(t *testing.T) {
	hc := node.NewHitChain()
	a := node.New(node.TypeBasic, node.LayoutBlock)
	b := node.New(node.TypeBasic, node.LayoutBlock)

	hc.Tick()
	hc.Mark(a)
	hc.Mark(b)
	if unhit := hc.Prune(); len(unhit) != 0 {
		t.Fatalf("expected no unhit nodes in the first tick, got %d", len(unhit))
	}

	hc.Tick()
	hc.Mark(a)
	unhit := hc.Prune()
	if len(unhit) != 1 || unhit[0] != b {
		t.Fatalf("expected b to be unhit in the second tick, got %v", unhit)
	}
}
