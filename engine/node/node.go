/*
Package node implements Node, the element type of the document's logical
tree. A Node is created by the markup parser or by direct API calls,
carries a resolved Styling, and for inline leaves owns the raw text that
feeds paragraph-element construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package node

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer-style/quipu/engine/style"
	"github.com/npillmayer-style/quipu/engine/tree"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Type is a node's element type tag.
type Type uint8

const (
	TypeBasic Type = iota
	TypeText
	TypeHBox
	TypeVBox
	TypeParagraph
	TypeHeading
	TypeHyperlink
	TypeImage
	TypeUser
)

// LayoutClass determines how a node participates in box generation.
type LayoutClass uint8

const (
	LayoutNone LayoutClass = iota
	LayoutBlock
	LayoutInline
	LayoutInlineContainer
)

// Flags are boolean node attributes, tracked separately from style flags.
type Flags uint16

const (
	FlagDirty Flags = 1 << iota // subtree needs re-parsing of text/children
	FlagHitTracked
	FlagSelectionTracked
	FlagActive     // pointer is down on this node (selector pseudoclass :active)
	FlagHighlighted // node is marked highlighted (selector pseudoclass :highlighted)
)

// Has reports whether all bits in mask are set on f.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Box is the minimal surface a laid-out box must expose back to its
// owning Node, so engine/node need not import engine/box (whose own
// owner back-pointer is a plain interface{}).
type Box interface {
	TreeNode() *tree.Node
}

// Node is an element of the document's logical tree.
type Node struct {
	tree.Node // embeds parent/child/sibling links; Payload points back to *Node

	Type    Type
	Class   LayoutClass
	Style   style.Styling
	Text    string // owned text, meaningful for inline leaves
	Flags   Flags
	Attrs   map[string]string // raw attribute values, for selector matching
	ID      string
	Classes []string // CSS-like class list, for selector matching

	PrimaryBox Box // back-pointer to this node's primary box, if any

	// hitNext/hitPrev and selNext/selPrev are auxiliary list links used by
	// the hit-test and selection subsystems; they are not part of the
	// document tree itself.
	hitNext, hitPrev *Node
	selNext, selPrev *Node
}

// New creates a detached Node of the given type and layout class.
func New(typ Type, class LayoutClass) *Node {
	n := &Node{Type: typ, Class: class}
	n.Node = tree.NewNode(n)
	return n
}

// TreeNode returns the shared tree-node header for n.
func (n *Node) TreeNode() *tree.Node {
	return &n.Node
}

// AsNode recovers the *Node embedding a given tree.Node, or nil.
func AsNode(tn *tree.Node) *Node {
	if tn == nil {
		return nil
	}
	n, _ := tn.Payload.(*Node)
	return n
}

// Parent returns n's parent Node, or nil if n is a tree root.
func (n *Node) Parent() *Node {
	return AsNode(n.TreeNode().Parent())
}

// FirstChild returns n's first child Node, or nil.
func (n *Node) FirstChild() *Node {
	return AsNode(n.TreeNode().FirstChild())
}

// NextSibling returns the Node following n, or nil.
func (n *Node) NextSibling() *Node {
	return AsNode(n.TreeNode().NextSibling())
}

// AppendChild appends child to n's children.
func (n *Node) AppendChild(child *Node) {
	n.TreeNode().AppendChild(child.TreeNode())
}

// IsInlineContainer reports whether n hosts paragraph elements and a line
// list (i.e. is the seam at which the dual tree traversal swaps domains).
func (n *Node) IsInlineContainer() bool {
	return n.Class == LayoutInlineContainer
}

// HasClass reports whether c is one of n's CSS-like classes.
func (n *Node) HasClass(c string) bool {
	for _, cl := range n.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Hit chain: a doubly linked list of nodes hit during the current tick,
// stamped so stale entries can be pruned (spec.md §4.8).

// HitChain tracks nodes hit during the current pointer-event tick.
type HitChain struct {
	head, tail *Node
	stamp      map[*Node]uint64
	clock      uint64
}

// NewHitChain returns an empty hit chain.
func NewHitChain() *HitChain {
	return &HitChain{stamp: make(map[*Node]uint64)}
}

// Tick advances the hit clock, starting a new round of hit delivery.
func (hc *HitChain) Tick() uint64 {
	hc.clock++
	return hc.clock
}

// Mark stamps n as hit during the current tick, linking it into the chain
// if it wasn't already present.
func (hc *HitChain) Mark(n *Node) {
	if _, ok := hc.stamp[n]; !ok {
		n.hitPrev = hc.tail
		if hc.tail != nil {
			hc.tail.hitNext = n
		} else {
			hc.head = n
		}
		hc.tail = n
		n.hitNext = nil
	}
	hc.stamp[n] = hc.clock
}

// Prune walks the chain and returns every node whose stamp doesn't match
// the current clock, unlinking them from the chain. Callers send these an
// UNHIT message.
func (hc *HitChain) Prune() []*Node {
	var unhit []*Node
	n := hc.head
	for n != nil {
		next := n.hitNext
		if hc.stamp[n] != hc.clock {
			unhit = append(unhit, n)
			hc.unlink(n)
			delete(hc.stamp, n)
		}
		n = next
	}
	return unhit
}

func (hc *HitChain) unlink(n *Node) {
	if n.hitPrev != nil {
		n.hitPrev.hitNext = n.hitNext
	} else {
		hc.head = n.hitNext
	}
	if n.hitNext != nil {
		n.hitNext.hitPrev = n.hitPrev
	} else {
		hc.tail = n.hitPrev
	}
	n.hitNext, n.hitPrev = nil, nil
}
