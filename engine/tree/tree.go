/*
Package tree implements the shared tree-node header embedded by both the
document's node tree and its box tree, plus a dual-tree iterator that walks
across the boundary between the two: a node tree node and its generated
boxes are different objects, linked together at the inline-container seam,
and client code frequently needs to walk from one domain into the other
without caring which one it started in.

Every tree-dwelling type in this module — document nodes, boxes, line
boxes — embeds Node by value and exposes it through a TreeNode() accessor,
following the pattern used throughout this codebase's container and
context types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import "github.com/npillmayer/schuko/gtrace"
import "github.com/npillmayer/schuko/tracing"

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Node is a generic tree-node header: parent, first/last child and
// previous/next sibling links, plus a Payload pointing back to the
// concrete type embedding this Node (so walking the tree in terms of
// *Node can still recover the original typed value).
type Node struct {
	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
	Payload     interface{}
}

// NewNode creates a detached Node carrying payload.
func NewNode(payload interface{}) Node {
	return Node{Payload: payload}
}

// Parent returns n's parent, or nil if n is a tree root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// FirstChild returns n's first child, or nil if n is a leaf.
func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.firstChild
}

// LastChild returns n's last child, or nil if n is a leaf.
func (n *Node) LastChild() *Node {
	if n == nil {
		return nil
	}
	return n.lastChild
}

// PrevSibling returns the sibling immediately before n, or nil.
func (n *Node) PrevSibling() *Node {
	if n == nil {
		return nil
	}
	return n.prevSibling
}

// NextSibling returns the sibling immediately after n, or nil.
func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	return n.nextSibling
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.firstChild == nil
}

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count++
	}
	return count
}

// AppendChild links child as n's new last child. child must be detached
// (Isolate it first if it is currently linked elsewhere).
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		panic("tree: AppendChild called with an already-linked node")
	}
	child.parent = n
	if n.lastChild == nil {
		n.firstChild = child
		n.lastChild = child
		return
	}
	child.prevSibling = n.lastChild
	n.lastChild.nextSibling = child
	n.lastChild = child
}

// InsertBefore links newChild immediately before refChild, which must
// already be a child of n.
func (n *Node) InsertBefore(newChild, refChild *Node) {
	if refChild == nil {
		n.AppendChild(newChild)
		return
	}
	if refChild.parent != n {
		panic("tree: InsertBefore called with a refChild that is not a child of n")
	}
	newChild.parent = n
	newChild.nextSibling = refChild
	newChild.prevSibling = refChild.prevSibling
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

// Isolate detaches n from its parent and siblings, closing the gap it
// leaves behind. n's own children are left untouched.
func (n *Node) Isolate() *Node {
	if n.parent != nil {
		if n.parent.firstChild == n {
			n.parent.firstChild = n.nextSibling
		}
		if n.parent.lastChild == n {
			n.parent.lastChild = n.prevSibling
		}
	}
	if n.prevSibling != nil {
		n.prevSibling.nextSibling = n.nextSibling
	}
	if n.nextSibling != nil {
		n.nextSibling.prevSibling = n.prevSibling
	}
	n.parent, n.prevSibling, n.nextSibling = nil, nil, nil
	return n
}

// Walk calls visit for n and every descendant, in document order
// (pre-order, depth-first). Walk stops early if visit returns false.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		Walk(c, visit)
	}
}

// Holder is implemented by any type embedding Node by value.
type Holder interface {
	TreeNode() *Node
}

// ---------------------------------------------------------------------------

// DualWalker walks a node tree and, at nodes the caller designates as
// inline containers, swaps into a parallel box-tree subtree instead of
// continuing into the node tree's own children. This is how layout and
// hit-testing traverse the document: most of it is node-tree shaped, but
// inline content (paragraphs) is represented as a box-tree of line boxes
// that has no one-to-one correspondence with node-tree children.
type DualWalker struct {
	// IsInlineContainer decides, for a node-tree node, whether to swap
	// into its box-tree subtree instead of recursing into its node-tree
	// children.
	IsInlineContainer func(*Node) bool
	// BoxTreeRoot returns the root *Node of the box-tree subtree
	// belonging to an inline container.
	BoxTreeRoot func(*Node) *Node
}

// Walk performs the dual-tree traversal starting at root (a node-tree
// node), invoking visit for every node-tree node and every box-tree node
// reached through a swap, in document order.
func (dw DualWalker) Walk(root *Node, visit func(n *Node, inBoxTree bool) bool) {
	dw.walk(root, false, visit)
}

func (dw DualWalker) walk(n *Node, inBoxTree bool, visit func(*Node, bool) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n, inBoxTree) {
		return false
	}
	if !inBoxTree && dw.IsInlineContainer != nil && dw.IsInlineContainer(n) {
		boxRoot := dw.BoxTreeRoot(n)
		return dw.walk(boxRoot, true, visit)
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if !dw.walk(c, inBoxTree, visit) {
			return false
		}
	}
	return true
}
