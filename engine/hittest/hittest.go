package hittest

import (
	"sort"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/node"
)

// EventKind tags a delivered hit-chain message.
type EventKind uint8

const (
	// EventHit is delivered to every node hit this tick, top-most first;
	// the first delivery in a tick carries Topmost.
	EventHit EventKind = iota
	// EventUnhit is delivered to nodes that were hit last tick but are not
	// hit this tick, after the hit set is pruned.
	EventUnhit
)

// Event is one message an owning node receives from a point query.
type Event struct {
	Kind    EventKind
	Node    *node.Node
	Box     *box.Box // nil for EventUnhit
	Topmost bool
}

// owningNode recovers the node.Node that owns b, or nil if b carries no
// node owner (e.g. a synthesized line box with no direct owner).
func owningNode(b *box.Box) *node.Node {
	n, _ := b.Owner.(*node.Node)
	return n
}

// HitTest point-queries grid at p, depth-sorts the hits deepest first,
// marks each owning node in chain for the current tick, and returns the
// HIT events (top-most first) followed by the UNHIT events produced by
// pruning nodes that were hit last tick but not this one.
func HitTest(grid *box.Grid, chain *node.HitChain, p dimen.Point, maxCount int) []Event {
	boxes, _ := grid.QueryPoint(p, maxCount)
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Depth > boxes[j].Depth
	})

	chain.Tick()
	var events []Event
	topmost := true
	for _, b := range boxes {
		n := owningNode(b)
		if n == nil {
			continue
		}
		chain.Mark(n)
		events = append(events, Event{Kind: EventHit, Node: n, Box: b, Topmost: topmost})
		topmost = false
	}
	for _, n := range chain.Prune() {
		events = append(events, Event{Kind: EventUnhit, Node: n})
	}
	return events
}
