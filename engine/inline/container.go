package inline

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/knuthplass"
	"github.com/npillmayer-style/quipu/engine/node"
)

// Env supplies the font-metric callbacks inline synthesis needs but
// cannot compute itself: element cell height and inter-word space width,
// both resolved from a concrete font behind the backend package's
// interfaces. Per-element advances are already baked into khipu.Element
// by the time synthesis runs, so Env is narrower than the callbacks
// knuthplass.Break takes.
type Env struct {
	Height func(khipu.Element) dimen.Dimen
	Space  func(owner interface{}) dimen.Dimen
}

// Line is a synthesized line box together with the placement-group boxes
// positioned inside it. Groups may alias Box itself when a single group
// spans the whole line.
type Line struct {
	Box    *box.Box
	Groups []*box.Box
	Layers []*TextLayer // parallel to Groups; nil entry for an inline-object group
}

// Container owns the synthesized line boxes for one inline-container
// node: its paragraph elements, the line-breaker's current solution, and
// a free list of placement-group boxes recycled across re-synthesis
// (spec.md §4.5).
type Container struct {
	Node *node.Node
	Box  *box.Box

	Run      khipu.Run
	Solution *knuthplass.Solution
	Lines    []*Line

	buildQueue []int
	freeList   []*box.Box
}

// NewContainer creates a Container for an inline-container node and its
// box, with no lines synthesized yet.
func NewContainer(n *node.Node, b *box.Box) *Container {
	return &Container{Node: n, Box: b}
}

// Synthesize reconciles c's line boxes against a fresh run and break
// solution. Lines whose element range is unchanged from the last
// synthesis are left untouched; the rest are rebuilt through the bounded
// build queue, and placement-group boxes belonging to discarded lines
// are pushed onto the free list for reuse. It returns whether any line
// was rebuilt or the line count changed; in that case it has also
// cleared FlagBoundsDefined on the container box through ModifyClear.
func (c *Container) Synthesize(run khipu.Run, sol *knuthplass.Solution, env Env) bool {
	canCompare := c.Box.Has(box.FlagSameParagraph) && c.Run != nil
	newLines := make([]*Line, len(sol.Lines))
	anyBuilt := false
	for i, spec := range sol.Lines {
		if canCompare && i < len(c.Lines) && lineUnchanged(c.Lines[i], spec) {
			newLines[i] = c.Lines[i]
			continue
		}
		c.buildQueue = append(c.buildQueue, i)
		if len(c.buildQueue) >= MaxBuildQueue {
			c.flushQueue(newLines, run, sol, env)
		}
		anyBuilt = true
	}
	c.flushQueue(newLines, run, sol, env)

	for i, old := range c.Lines {
		if i >= len(newLines) || newLines[i] != old {
			c.bulldoze(old)
		}
	}
	changed := anyBuilt || len(c.Lines) != len(newLines)

	c.Lines = newLines
	c.Run, c.Solution = run, sol
	c.Box.SetFlags(box.FlagSameParagraph)
	if changed {
		c.Box.ModifyClear(box.FlagBoundsDefined, true)
	}
	return changed
}

func lineUnchanged(l *Line, spec knuthplass.Line) bool {
	return l != nil && l.Box.FirstElement == spec.From && l.Box.LastElement == spec.To
}

// bulldoze reclaims a discarded line's placement-group boxes onto the
// free list; the line box itself is not pooled, only its text boxes are
// (spec.md §4.5).
func (c *Container) bulldoze(l *Line) {
	if l == nil {
		return
	}
	for _, g := range l.Groups {
		if g == l.Box {
			continue // the whole-line group aliases the line box, not a pooled text box
		}
		c.freeList = append(c.freeList, g)
	}
}

func (c *Container) flushQueue(newLines []*Line, run khipu.Run, sol *knuthplass.Solution, env Env) {
	for _, i := range c.buildQueue {
		var reuse *box.Box
		if i < len(c.Lines) && c.Lines[i] != nil {
			reuse = c.Lines[i].Box
		}
		newLines[i] = c.buildLine(reuse, run, sol.Lines[i], env)
	}
	c.buildQueue = c.buildQueue[:0]
}

// buildLine materializes one line box and its placement-group children
// for the element range [spec.From, spec.To), reusing an existing line
// box when one is passed in.
func (c *Container) buildLine(reuse *box.Box, run khipu.Run, spec knuthplass.Line, env Env) *Line {
	lbox := reuse
	if lbox == nil {
		lbox = box.New()
		c.Box.TreeNode().AppendChild(lbox.TreeNode())
	}
	lbox.FirstElement, lbox.LastElement = spec.From, spec.To
	lbox.SetSlot(box.Horizontal, box.SlotIdeal, roundUpPixel(spec.Width))
	lbox.SetSlot(box.Vertical, box.SlotIdeal, roundUpPixel(spec.Height))

	groups := placementGroups(run, spec.From, spec.To)
	gboxes := make([]*box.Box, 0, len(groups))
	layers := make([]*TextLayer, 0, len(groups))
	// spec.md §4.4: the paragraph's last line is never expanded or
	// shrunk to fill the measure, regardless of what AdjustRatio happens
	// to carry.
	ratio := spec.AdjustRatio
	if spec.Unscaled {
		ratio = 0
	}
	var accum, placed dimen.Dimen // high-precision accumulator and the pixel grid already handed out
	for _, g := range groups {
		full := len(groups) == 1 && !g.object
		var gbox *box.Box
		switch {
		case full:
			gbox = lbox
		case len(c.freeList) > 0:
			gbox = c.freeList[len(c.freeList)-1]
			c.freeList = c.freeList[:len(c.freeList)-1]
			reparent(gbox, lbox)
		default:
			gbox = box.New()
			lbox.TreeNode().AppendChild(gbox.TreeNode())
		}
		gbox.FirstElement, gbox.LastElement = g.from, g.to
		w, h := groupMetrics(run, g, ratio, env)
		gbox.SetSlot(box.Horizontal, box.SlotIdeal, roundUpPixel(w))
		gbox.SetSlot(box.Vertical, box.SlotIdeal, roundUpPixel(h))

		target := roundDownPixel(accum) // ideal start x of this group, already-placed groups excluded
		gbox.H.Margin[0] = target - placed
		accum += w
		placed = target + roundUpPixel(w)

		gbox.SetFlags(box.FlagTextLayerMayBeValid)
		gboxes = append(gboxes, gbox)
		layers = append(layers, BuildTextLayer(run, g, ratio, env))
	}
	return &Line{Box: lbox, Groups: gboxes, Layers: layers}
}

func reparent(child, parent *box.Box) {
	if child.TreeNode().Parent() == parent.TreeNode() {
		return
	}
	if child.TreeNode().Parent() != nil {
		child.TreeNode().Isolate()
	}
	parent.TreeNode().AppendChild(child.TreeNode())
}

// roundUpPixel rounds d up to the nearest whole pixel (spec.md §4.5).
func roundUpPixel(d dimen.Dimen) dimen.Dimen {
	if d <= 0 {
		return 0
	}
	return (d + dimen.PX - 1) / dimen.PX * dimen.PX
}

// roundDownPixel rounds d down to the nearest whole pixel, used for the
// running placement accumulator so rounding error from individual groups
// doesn't drift the line's total width.
func roundDownPixel(d dimen.Dimen) dimen.Dimen {
	if d <= 0 {
		return 0
	}
	return d / dimen.PX * dimen.PX
}
