package tree_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/tree"
)

func TestAppendChildAndWalk(t *testing.T) {
	root := tree.NewNode("root")
	a := tree.NewNode("a")
	b := tree.NewNode("b")
	root.AppendChild(&a)
	root.AppendChild(&b)
	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", root.ChildCount())
	}
	var order []string
	tree.Walk(&root, func(n *tree.Node) bool {
		order = append(order, n.Payload.(string))
		return true
	})
	if len(order) != 3 || order[0] != "root" || order[1] != "a" || order[2] != "b" {
		t.Errorf("unexpected walk order: %v", order)
	}
}

func TestIsolateClosesGap(t *testing.T) {
	root := tree.NewNode("root")
	a := tree.NewNode("a")
	b := tree.NewNode("b")
	c := tree.NewNode("c")
	root.AppendChild(&a)
	root.AppendChild(&b)
	root.AppendChild(&c)
	b.Isolate()
	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 children after isolate, got %d", root.ChildCount())
	}
	if a.NextSibling() != &c {
		t.Errorf("expected a's next sibling to be c after isolating b")
	}
	if c.PrevSibling() != &a {
		t.Errorf("expected c's prev sibling to be a after isolating b")
	}
}

func TestInsertBefore(t *testing.T) {
	root := tree.NewNode("root")
	a := tree.NewNode("a")
	c := tree.NewNode("c")
	root.AppendChild(&a)
	root.AppendChild(&c)
	b := tree.NewNode("b")
	root.InsertBefore(&b, &c)
	var order []string
	for ch := root.FirstChild(); ch != nil; ch = ch.NextSibling() {
		order = append(order, ch.Payload.(string))
	}
	if len(order) != 3 || order[1] != "b" {
		t.Errorf("expected [a b c], got %v", order)
	}
}

func TestDualWalkerSwapsAtInlineContainer(t *testing.T) {
	root := tree.NewNode("root")
	para := tree.NewNode("para")
	root.AppendChild(&para)
	lineBoxRoot := tree.NewNode("line0")
	lineChild := tree.NewNode("text0")
	lineBoxRoot.AppendChild(&lineChild)

	dw := tree.DualWalker{
		IsInlineContainer: func(n *tree.Node) bool { return n.Payload == "para" },
		BoxTreeRoot:       func(n *tree.Node) *tree.Node { return &lineBoxRoot },
	}
	var visited []string
	dw.Walk(&root, func(n *tree.Node, inBoxTree bool) bool {
		visited = append(visited, n.Payload.(string))
		return true
	})
	if len(visited) != 4 {
		t.Fatalf("expected 4 visited nodes (root, para, line0, text0), got %v", visited)
	}
	if visited[2] != "line0" || visited[3] != "text0" {
		t.Errorf("expected swap into box tree, got %v", visited)
	}
}
