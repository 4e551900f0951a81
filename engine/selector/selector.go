package selector

import (
	"fmt"
	"strings"

	"github.com/npillmayer-style/quipu/engine/node"
)

// MaxClauses and MaxDepth are spec.md §6's selector grammar bounds: at
// most 16 comma-separated atoms per descendant-chain level, and at most
// 16 levels in the chain itself.
const (
	MaxClauses = 16
	MaxDepth   = 16
)

type atomKind uint8

const (
	atomTag atomKind = iota
	atomClass
	atomPseudo
)

type atom struct {
	kind  atomKind
	value string
}

// segment is one descendant-chain level: every atom in it must match the
// same node (the comma is an AND within a level, not an OR of chains).
type segment []atom

// Selector is a parsed descendant chain, outermost level first.
type Selector struct {
	segments []segment
}

// Parse parses a selector string into a Selector.
func Parse(s string) (*Selector, error) {
	segStrs := strings.Fields(s)
	if len(segStrs) == 0 {
		return nil, fmt.Errorf("selector: empty selector")
	}
	if len(segStrs) > MaxDepth {
		return nil, fmt.Errorf("selector: chain %q is %d levels deep, max %d", s, len(segStrs), MaxDepth)
	}
	sel := &Selector{segments: make([]segment, len(segStrs))}
	for i, ss := range segStrs {
		seg, err := parseSegment(ss)
		if err != nil {
			return nil, err
		}
		sel.segments[i] = seg
	}
	return sel, nil
}

func parseSegment(ss string) (segment, error) {
	clauses := strings.Split(ss, ",")
	if len(clauses) > MaxClauses {
		return nil, fmt.Errorf("selector: %q has %d clauses, max %d", ss, len(clauses), MaxClauses)
	}
	seg := make(segment, 0, len(clauses))
	for _, raw := range clauses {
		raw = strings.TrimSpace(raw)
		a, err := parseAtom(raw)
		if err != nil {
			return nil, err
		}
		seg = append(seg, a)
	}
	return seg, nil
}

func parseAtom(raw string) (atom, error) {
	if raw == "" {
		return atom{}, fmt.Errorf("selector: empty clause")
	}
	switch raw[0] {
	case '.':
		if len(raw) == 1 {
			return atom{}, fmt.Errorf("selector: empty class clause")
		}
		return atom{kind: atomClass, value: raw[1:]}, nil
	case ':':
		if len(raw) == 1 {
			return atom{}, fmt.Errorf("selector: empty pseudoclass clause")
		}
		return atom{kind: atomPseudo, value: raw[1:]}, nil
	default:
		if _, ok := node.ParseType(raw); !ok {
			return atom{}, fmt.Errorf("selector: unknown tag %q", raw)
		}
		return atom{kind: atomTag, value: raw}, nil
	}
}

// Match reports whether n, read together with its ancestor chain,
// satisfies sel's descendant chain: the last segment must match n
// itself, and each preceding segment must match some strict ancestor,
// in document order (the standard right-to-left CSS matching
// algorithm, backtracking over ancestors — simple enough at a 16-level
// bound that no memoization is worth adding).
func Match(sel *Selector, n *node.Node) bool {
	if sel == nil || len(sel.segments) == 0 || n == nil {
		return false
	}
	last := len(sel.segments) - 1
	if !matchSegment(sel.segments[last], n) {
		return false
	}
	return matchAncestors(sel.segments[:last], n)
}

func matchAncestors(segs []segment, n *node.Node) bool {
	if len(segs) == 0 {
		return true
	}
	last := len(segs) - 1
	for anc := n.Parent(); anc != nil; anc = anc.Parent() {
		if matchSegment(segs[last], anc) && matchAncestors(segs[:last], anc) {
			return true
		}
	}
	return false
}

func matchSegment(seg segment, n *node.Node) bool {
	for _, a := range seg {
		if !matchAtom(a, n) {
			return false
		}
	}
	return true
}

func matchAtom(a atom, n *node.Node) bool {
	switch a.kind {
	case atomTag:
		return node.TypeName(n.Type) == a.value
	case atomClass:
		return n.HasClass(a.value)
	case atomPseudo:
		switch a.value {
		case "active":
			return n.Flags.Has(node.FlagActive)
		case "highlighted":
			return n.Flags.Has(node.FlagHighlighted)
		default:
			return false
		}
	default:
		return false
	}
}
