/*
Package quipu wires the engine's packages into a single document: a node
tree parsed from markup, the box tree it drives, the spatial grid, a view
and hit-test layer over both. Document is the analogue of the teacher's
top-level typesetter object, generalized from a page-oriented document to
the engine's incremental, suspendable layout model (spec.md §5, §9).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package quipu

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/backend"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/hittest"
	"github.com/npillmayer-style/quipu/engine/inline"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/knuthplass"
	"github.com/npillmayer-style/quipu/engine/khipu/linebreak"
	"github.com/npillmayer-style/quipu/engine/layout"
	"github.com/npillmayer-style/quipu/engine/markup"
	"github.com/npillmayer-style/quipu/engine/node"
	"github.com/npillmayer-style/quipu/engine/style"
	"github.com/npillmayer-style/quipu/engine/view"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Backend bundles the host collaborators a Document needs but cannot
// implement itself (spec.md §6): font matching and measurement, image
// loading, and optionally a hyphenation dictionary. FontMatcher and
// TextMeasurer must be non-nil for any document containing text.
type Backend struct {
	Fonts    backend.FontMatcher
	Measure  backend.TextMeasurer
	Images  backend.ImageLoader  // may be nil if the document has no <image> nodes
	Hyphens *khipu.Hyphenator    // may be nil to disable hyphenation
	Params  *linebreak.Parameters // may be nil for knuthplass.NewKPDefaultParameters()
}

// Document is a parsed markup tree laid out against a box tree, queryable
// through a spatial grid, a view's command list, and hit testing /
// selection. It owns exactly one suspendable layout run at a time.
type Document struct {
	backend Backend

	Root    *node.Node
	RootBox *box.Box
	Grid    *box.Grid

	chain   *node.HitChain
	tracker hittest.Tracker

	containers map[*node.Node]*inline.Container
	order      []*node.Node // containers in document order, for selection rebuilds

	layers       map[*box.Box]*inline.TextLayer
	imageHandles map[*node.Node]backend.ImageHandle

	// selections holds the persisted [from, to) selection range per
	// inline-container node, reapplied to every freshly encoded Run:
	// encodeRun is called again on every Break (it rebuilds the run from
	// the node tree from scratch each time), so FlagSelected bits set
	// directly on a Container's Run would otherwise be lost the moment
	// layout next resynthesizes it.
	selections map[*node.Node][2]int

	state *layout.State
}

// NewDocument parses src as the engine's markup language and builds a
// Document ready for Update, with its root box sized to viewport.
func NewDocument(src string, be Backend, viewport dimen.Rect) (*Document, error) {
	root, err := markup.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("quipu: %w", err)
	}
	d := &Document{
		backend:      be,
		Root:         root,
		Grid:         box.NewGrid(),
		chain:        node.NewHitChain(),
		containers:   make(map[*node.Node]*inline.Container),
		layers:       make(map[*box.Box]*inline.TextLayer),
		imageHandles: make(map[*node.Node]backend.ImageHandle),
		selections:   make(map[*node.Node][2]int),
	}
	d.RootBox = d.buildBox(root, box.Horizontal)
	d.RootBox.SetSlot(box.Horizontal, box.SlotExtrinsic, viewport.W)
	d.RootBox.SetSlot(box.Vertical, box.SlotExtrinsic, viewport.H)
	d.RootBox.Pos = viewport.TopL
	d.Grid.Insert(d.RootBox)
	return d, nil
}

// ---------------------------------------------------------------------------
// Box tree construction.

// buildBox creates the box for n (and, recursively, for its block
// children), interpreting the geometry attributes the markup parser left
// as raw strings in n.Attrs (spec.md §6's tag attributes; parser.go's
// applyAttr only resolves style-cascade properties, never geometry).
func (d *Document) buildBox(n *node.Node, parentMainAxis box.Axis) *box.Box {
	b := box.New()
	b.Owner = n
	n.PrimaryBox = b
	b.MainAxis = box.Horizontal
	if s, ok := n.Attrs["axis"]; ok && s == "vertical" {
		b.MainAxis = box.Vertical
	}

	applyLengthAttr(n, b, box.Horizontal, "width", "min-width", "max-width")
	applyLengthAttr(n, b, box.Vertical, "height", "min-height", "max-height")
	applyFlexAttr(n, b, parentMainAxis)
	applyBoxEdges(n, b)
	applyArrangeAlign(n, b)
	applyClip(n, b)

	if n.IsInlineContainer() {
		// Lines synthesized by the line breaker always stack top to
		// bottom, regardless of the "axis" attribute (which governs a
		// box's markup children, not its synthesized ones).
		b.MainAxis = box.Vertical
		d.containers[n] = inline.NewContainer(n, b)
		d.order = append(d.order, n)
		return b
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Class == node.LayoutNone {
			continue
		}
		cb := d.buildBox(c, b.MainAxis)
		b.TreeNode().AppendChild(cb.TreeNode())
	}
	return b
}

// applyLengthAttr parses a box's ideal length plus its min/max bounds on
// one axis from the matching attribute names.
func applyLengthAttr(n *node.Node, b *box.Box, ax box.Axis, idealAttr, minAttr, maxAttr string) {
	a := b.Axis(ax)
	if s, ok := n.Attrs[idealAttr]; ok {
		if l, err := length.Parse(s); err == nil {
			a.Mode = l.Mode
			a.Ideal = l
		}
	}
	if s, ok := n.Attrs[minAttr]; ok {
		if d, _, err := dimen.ParseDimen(s); err == nil {
			a.Min = d
		}
	}
	if s, ok := n.Attrs[maxAttr]; ok {
		if d, _, err := dimen.ParseDimen(s); err == nil {
			a.Max = d
		}
	}
}

// applyFlexAttr parses "grow"/"shrink" factors, which apply along the
// parent's main axis (the axis flex distribution actually runs on), not
// necessarily the axis named by the attribute itself.
func applyFlexAttr(n *node.Node, b *box.Box, parentMainAxis box.Axis) {
	a := b.Axis(parentMainAxis)
	if s, ok := n.Attrs["grow"]; ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			a.Grow = f
		}
	}
	if s, ok := n.Attrs["shrink"]; ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			a.Shrink = f
		}
	}
}

// applyBoxEdges parses space-separated top/right/bottom/left padding and
// margin lists, following box.go's clockwise-from-top convention.
func applyBoxEdges(n *node.Node, b *box.Box) {
	if s, ok := n.Attrs["padding"]; ok {
		if edges, ok := parseEdges(s); ok {
			b.H.Padding = [2]dimen.Dimen{edges[box.Left], edges[box.Right]}
			b.V.Padding = [2]dimen.Dimen{edges[box.Top], edges[box.Bottom]}
		}
	}
	if s, ok := n.Attrs["margin"]; ok {
		if edges, ok := parseEdges(s); ok {
			b.H.Margin = [2]dimen.Dimen{edges[box.Left], edges[box.Right]}
			b.V.Margin = [2]dimen.Dimen{edges[box.Top], edges[box.Bottom]}
		}
	}
}

// parseEdges parses a CSS-shorthand-style edge list (1, 2 or 4 values,
// clockwise from top) into [top, right, bottom, left].
func parseEdges(s string) ([4]dimen.Dimen, bool) {
	var out [4]dimen.Dimen
	fields := strings.Fields(s)
	vals := make([]dimen.Dimen, 0, len(fields))
	for _, f := range fields {
		d, _, err := dimen.ParseDimen(f)
		if err != nil {
			return out, false
		}
		vals = append(vals, d)
	}
	switch len(vals) {
	case 1:
		out = [4]dimen.Dimen{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		out = [4]dimen.Dimen{vals[0], vals[1], vals[0], vals[1]}
	case 4:
		out = [4]dimen.Dimen{vals[0], vals[1], vals[2], vals[3]}
	default:
		return out, false
	}
	return out, true
}

func applyArrangeAlign(n *node.Node, b *box.Box) {
	switch n.Attrs["arrangement"] {
	case "middle":
		b.Arrangement = box.ArrangeMiddle
	case "end":
		b.Arrangement = box.ArrangeEnd
	}
	switch n.Attrs["align"] {
	case "middle":
		b.Alignment = box.AlignMiddle
	case "end":
		b.Alignment = box.AlignEnd
	case "stretch":
		b.Alignment = box.AlignStretch
	}
}

func applyClip(n *node.Node, b *box.Box) {
	switch n.Attrs["clip-selector"] {
	case "padding":
		b.ClipSelector = box.ClipPadding
	case "content":
		b.ClipSelector = box.ClipContent
	case "margin":
		b.ClipSelector = box.ClipMargin
	}
	if s, ok := n.Attrs["clip-edges"]; ok {
		var edges box.ClipEdges
		for _, f := range strings.Fields(s) {
			switch f {
			case "top":
				edges |= box.ClipTop
			case "right":
				edges |= box.ClipRight
			case "bottom":
				edges |= box.ClipBottom
			case "left":
				edges |= box.ClipLeft
			case "all":
				edges |= box.ClipAll
			}
		}
		b.ClipEdges = edges
	}
}

// ---------------------------------------------------------------------------
// Paragraph-element encoding.

// encodeRun walks n's inline descendants in document order, producing the
// flat khipu.Run its inline.Container will break and synthesize. A
// hyperlink node contributes no elements of its own — it is a pure style
// wrapper per spec.md §6 — its descendants are encoded as if they were
// direct children of the inline container.
func (d *Document) encodeRun(n *node.Node) khipu.Run {
	var run khipu.Run
	first := true
	d.encodeInto(n, &run, &first)
	run = markRunHyphenation(run, d.backend.Hyphens)
	if sel, ok := d.selections[n]; ok {
		applySelection(run, sel[0], sel[1])
	}
	return run
}

// applySelection sets or clears khipu.FlagSelected across run so it
// matches [from, to), the last range SetSelected recorded for this run's
// container.
func applySelection(run khipu.Run, from, to int) {
	for i := range run {
		if i >= from && i < to {
			run[i].Flags |= khipu.FlagSelected
		} else {
			run[i].Flags &^= khipu.FlagSelected
		}
	}
}

func (d *Document) encodeInto(n *node.Node, run *khipu.Run, first *bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Type {
		case node.TypeText:
			m := d.measurerFor(c)
			if m == nil {
				continue
			}
			*run = append(*run, khipu.Encode(c.Text, c, m, *first)...)
			*first = false
		case node.TypeImage:
			w := d.imageWidth(c)
			*run = append(*run, khipu.InlineObject(c, w, c, *first)...)
			*first = false
		case node.TypeHyperlink:
			d.encodeInto(c, run, first)
		default:
			// out of the inline grammar; skip (block content cannot nest
			// inside an inline container per the markup parser's class table)
		}
	}
}

// measurerFor adapts the backend's TextMeasurer to khipu.Measurer for the
// font resolved from n's style.
func (d *Document) measurerFor(n *node.Node) khipu.Measurer {
	if d.backend.Fonts == nil || d.backend.Measure == nil {
		return nil
	}
	h, err := d.backend.Fonts.MatchFont(n.Style.FontFamily, n.Style.FontSize, n.Style.Flags)
	if err != nil {
		return nil
	}
	measure := d.backend.Measure
	return khipu.AdvanceFunc(func(r rune) dimen.Dimen {
		advances, _, _, err := measure.MeasureText(h, string(r))
		if err != nil || len(advances) == 0 {
			return 0
		}
		return advances[0]
	})
}

// imageWidth returns an image node's natural width, or 0 if its backing
// image isn't loaded yet, per backend.ImageLoader's documented contract
// that a not-yet-ready image lays out with no natural size.
func (d *Document) imageWidth(n *node.Node) dimen.Dimen {
	if d.backend.Images == nil {
		return 0
	}
	h, ok := d.imageHandles[n]
	if !ok {
		src := n.Attrs["src"]
		created, err := d.backend.Images.CreateNetworkImage(src, src)
		if err != nil {
			return 0
		}
		h = created
		d.imageHandles[n] = h
	}
	_, width, _, ready := d.backend.Images.QueryNetworkImage(h)
	if !ready {
		return 0
	}
	return dimen.Dimen(width) * dimen.PX
}

// markRunHyphenation groups contiguous letter runs sharing one owner into
// words and stamps PenaltyMultipartHyphen at the syllable boundaries a
// Hyphenator finds, without inserting a visible hyphen glyph: spec.md
// §8.4's invariant only requires the penalty class to appear at internal
// breakpoints, and a rendered hyphen character would need the khipu
// element count to change mid-paragraph for no layout benefit.
func markRunHyphenation(run khipu.Run, h *khipu.Hyphenator) khipu.Run {
	if h == nil {
		return run
	}
	i := 0
	for i < len(run) {
		if run[i].IsInlineObject() || !isWordRune(run[i].Rune) {
			i++
			continue
		}
		j := i
		var b strings.Builder
		for j < len(run) && !run[j].IsInlineObject() && isWordRune(run[j].Rune) {
			b.WriteRune(run[j].Rune)
			j++
		}
		syllables, ok := h.Hyphenate(b.String())
		if ok {
			pos := i
			for si, syll := range syllables {
				pos += len([]rune(syll))
				if si < len(syllables)-1 && pos-1 < j {
					run[pos-1].Penalty = khipu.PenaltyMultipartHyphen
				}
			}
		}
		i = j
	}
	return run
}

func isWordRune(r rune) bool {
	return r != 0 && !strings.ContainsRune(" \t\n\r", r)
}

// ---------------------------------------------------------------------------
// InlineDriver: bridges engine/layout's sizing wheel to the paragraph
// pipeline (engine/khipu, .../knuthplass, engine/inline).

// PreferredWidth implements layout.InlineDriver.
func (d *Document) PreferredWidth(b *box.Box) (dimen.Dimen, error) {
	c := d.containerFor(b)
	run := d.encodeRun(c.Node)
	sol, err := knuthplass.Break(run, dimen.Infinity, d.params(), d.spaceWidth, d.elementHeight)
	if err != nil {
		return 0, err
	}
	return sol.PreferredWidth, nil
}

// Break implements layout.InlineDriver: it runs the line breaker at
// maxWidth, synthesizes line/placement-group boxes, and returns the
// resulting content height.
func (d *Document) Break(b *box.Box, maxWidth dimen.Dimen) (dimen.Dimen, error) {
	c := d.containerFor(b)
	run := d.encodeRun(c.Node)
	sol, err := knuthplass.Break(run, maxWidth, d.params(), d.spaceWidth, d.elementHeight)
	if err != nil {
		return 0, err
	}
	justification := c.Node.Style.Justification
	applyJustification(sol, justification)
	env := inline.Env{Height: d.elementHeight, Space: d.spaceWidthForOwner}
	c.Synthesize(run, sol, env)
	d.bridgeIdealSlots(c)
	alignment := justificationAlignment(justification)
	for _, l := range c.Lines {
		l.Box.Alignment = alignment
	}
	d.rebuildLayers(c)

	var height dimen.Dimen
	leading := dimen.Dimen(c.Node.Style.Leading) * dimen.PT
	for i, l := range sol.Lines {
		if i > 0 {
			height += leading
		}
		height += l.Height
	}
	return height, nil
}

// applyJustification enforces spec.md §4.4/§4.5's non-flush rule: under
// any mode but JustifyFull, a line is only ever shrunk to fit an overfull
// measure, never stretched to fill an underfull one (the paragraph's last
// line is already left unscaled by knuthplass.Break regardless of mode).
func applyJustification(sol *knuthplass.Solution, mode style.Justification) {
	if mode == style.JustifyFull {
		return
	}
	for i := range sol.Lines {
		if sol.Lines[i].Unscaled || sol.Lines[i].AdjustRatio <= 0 {
			continue
		}
		sol.Lines[i].AdjustRatio = 0
	}
}

// justificationAlignment maps a paragraph's justification mode onto the
// minor-axis Alignment the generic position pass (engine/layout's
// Position) applies to a line box within its container's content width,
// producing the ragged left/right/centered offset spec.md §4.5 requires
// for anything but flush justification.
func justificationAlignment(mode style.Justification) box.Alignment {
	switch mode {
	case style.JustifyRight:
		return box.AlignEnd
	case style.JustifyCenter:
		return box.AlignMiddle
	default:
		return box.AlignStart
	}
}

func (d *Document) containerFor(b *box.Box) *inline.Container {
	n, _ := b.Owner.(*node.Node)
	return d.containers[n]
}

func (d *Document) params() *linebreak.Parameters {
	if d.backend.Params != nil {
		return d.backend.Params
	}
	return knuthplass.NewKPDefaultParameters()
}

// elementHeight resolves a single element's line-height contribution from
// its owning node's matched font.
func (d *Document) elementHeight(e khipu.Element) dimen.Dimen {
	n, ok := e.Owner.(*node.Node)
	if !ok || d.backend.Fonts == nil {
		return 0
	}
	h, err := d.backend.Fonts.MatchFont(n.Style.FontFamily, n.Style.FontSize, n.Style.Flags)
	if err != nil {
		return 0
	}
	m, err := d.backend.Fonts.FontMetrics(h)
	if err != nil {
		return 0
	}
	return m.Height
}

func (d *Document) spaceWidth(run khipu.Run, i int) dimen.Dimen {
	w := d.spaceWidthForOwner(run[i].Owner)
	if i+1 < len(run) {
		if next := d.spaceWidthForOwner(run[i+1].Owner); next > w {
			w = next
		}
	}
	return w
}

func (d *Document) spaceWidthForOwner(owner interface{}) dimen.Dimen {
	n, ok := owner.(*node.Node)
	if !ok || d.backend.Fonts == nil {
		return 0
	}
	h, err := d.backend.Fonts.MatchFont(n.Style.FontFamily, n.Style.FontSize, n.Style.Flags)
	if err != nil {
		return 0
	}
	m, err := d.backend.Fonts.FontMetrics(h)
	if err != nil {
		return 0
	}
	return m.SpaceWidth
}

// bridgeIdealSlots finalizes every synthesized line and placement-group
// box directly from the SlotIdeal value engine/inline computed for it.
// These boxes are leaves appended as real children of the container box,
// so the generic sizing wheel would otherwise visit them and try to
// aggregate an intrinsic size from their own (empty) children, landing on
// zero; line/group boxes have no other way to be sized, so the driver
// that synthesized them finalizes them directly instead.
func (d *Document) bridgeIdealSlots(c *inline.Container) {
	for _, l := range c.Lines {
		finalizeFromIdeal(l.Box)
		for _, g := range l.Groups {
			finalizeFromIdeal(g)
		}
	}
}

func finalizeFromIdeal(b *box.Box) {
	for _, ax := range [2]box.Axis{box.Horizontal, box.Vertical} {
		if v, ok := b.Slot(ax, box.SlotIdeal); ok {
			b.SetSlot(ax, box.SlotExtrinsic, v)
		}
	}
	b.SetFlags(box.FlagTreeValid)
}

// rebuildLayers refreshes the text-layer lookup view/hittest consult for
// c's current lines, overwriting any entry left from a previous
// synthesis of the same boxes; an inline-object group's nil layer
// clears its old entry instead of leaving a stale one behind.
func (d *Document) rebuildLayers(c *inline.Container) {
	for _, l := range c.Lines {
		for i, g := range l.Groups {
			if l.Layers[i] != nil {
				d.layers[g] = l.Layers[i]
			} else {
				delete(d.layers, g)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// view.TextSource / view.ImageSource.

// TextRun implements view.TextSource.
func (d *Document) TextRun(b *box.Box) (view.TextRun, bool) {
	l, ok := d.layers[b]
	if !ok {
		return view.TextRun{}, false
	}
	return view.TextRun{
		Text:     l.Text,
		XPos:     l.XPos,
		FontID:   l.FontID,
		Palette:  l.Palette,
		RunStart: l.RunStart,
		RunIndex: l.RunIndex,
	}, true
}

// Image implements view.ImageSource.
func (d *Document) Image(b *box.Box) (interface{}, style.Color, bool) {
	n, ok := b.Owner.(*node.Node)
	if !ok || n.Type != node.TypeImage {
		return nil, style.Color{}, false
	}
	h, ok := d.imageHandles[n]
	if !ok {
		return nil, style.Color{}, false
	}
	return h, n.Style.EffectiveColor(), true
}

// ---------------------------------------------------------------------------
// hittest.CaretSource / hittest.SelectionTarget.

// CharBoundaries implements hittest.CaretSource.
func (d *Document) CharBoundaries(b *box.Box) ([]dimen.Dimen, bool) {
	l, ok := d.layers[b]
	if !ok {
		return nil, false
	}
	bounds := make([]dimen.Dimen, len(l.XPos)+1)
	copy(bounds, l.XPos)
	bounds[len(l.XPos)] = b.Width()
	return bounds, true
}

// ElementCount implements hittest.SelectionTarget.
func (d *Document) ElementCount(n *node.Node) int {
	c, ok := d.containers[n]
	if !ok {
		return 0
	}
	if c.Run == nil {
		c.Run = d.encodeRun(n)
	}
	return len(c.Run)
}

// SetSelected implements hittest.SelectionTarget: it records [from, to)
// as n's persisted selection range (reapplied by encodeRun on every
// future Break, since Break rebuilds the Run from scratch each time) and
// forces the container to resynthesize, since inline.Container.Synthesize's
// line-reuse check only compares each line's element range, never
// element content — a selection change inside an otherwise-unchanged
// range wouldn't otherwise be noticed and the line box would keep its
// old (unselected) text layer. Clearing FlagSameParagraph here is the
// same trigger notifyExtrinsicChanged uses when a container's width
// changes, so a selection-driven resynthesis rebuilds every line instead
// of reusing any.
func (d *Document) SetSelected(n *node.Node, from, to int) {
	c, ok := d.containers[n]
	if !ok {
		return
	}
	if from >= to {
		delete(d.selections, n)
	} else {
		d.selections[n] = [2]int{from, to}
	}
	if c.Run != nil {
		applySelection(c.Run, from, to)
	}
	c.Box.ClearFlags(box.FlagSameParagraph)
	c.Box.Axis(box.Vertical).Invalidate(box.SlotIntrinsic)
	c.Box.Axis(box.Vertical).Invalidate(box.SlotExtrinsic)
}

// ---------------------------------------------------------------------------
// Hit testing & selection entry points.

// HitTest point-queries the grid at p and delivers HIT/UNHIT events
// against the document's hit chain.
func (d *Document) HitTest(p dimen.Point, maxCount int) []hittest.Event {
	d.settle()
	return hittest.HitTest(d.Grid, d.chain, p, maxCount)
}

// SelectionDown records the selection anchor nearest (qx, y) for a
// left-button press.
func (d *Document) SelectionDown(qx, x0, x1, y dimen.Dimen, direction int, rule hittest.ClosingRule) bool {
	d.settle()
	addr, ok := hittest.ResolveAnchor(d.Grid, d, qx, x0, x1, y, direction, rule)
	if !ok {
		return false
	}
	d.tracker.Down(addr)
	return true
}

// SelectionDrag resolves the current pointer position against the
// recorded down anchor and rebuilds the selection across every inline
// container in document order.
func (d *Document) SelectionDrag(qx, x0, x1, y dimen.Dimen, direction int, rule hittest.ClosingRule) bool {
	d.settle()
	up, ok := hittest.ResolveAnchor(d.Grid, d, qx, x0, x1, y, direction, rule)
	if !ok {
		return false
	}
	return d.tracker.Rebuild(d, d.order, up, rule)
}

// ---------------------------------------------------------------------------
// Update / suspend-resume layout.

// Update advances (or starts) a sizing-wheel run, honoring timeout. It
// returns true once layout has fully settled, at which point Position and
// Clip have also run and the grid reflects final geometry. Call Update
// again with the same or a later now to resume a suspended run.
func (d *Document) Update(now func() time.Time, timeout time.Duration) (bool, error) {
	if d.state == nil {
		d.state = layout.NewState(d.RootBox, timeout, d)
	}
	done, err := d.state.Run(now)
	if err != nil {
		d.state = nil
		return false, err
	}
	if !done {
		return false, nil
	}
	d.state = nil
	d.finishGeometry()
	return true, nil
}

// finishGeometry runs the position and clip passes once sizing has
// settled, per spec.md §4.6.
func (d *Document) finishGeometry() {
	layout.Position(d.RootBox, d.Grid)
	layout.Clip(d.RootBox, unboundedRect(), 0)
}

func unboundedRect() dimen.Rect {
	return dimen.RectFromCorners(
		dimen.Point{X: -dimen.Infinity, Y: -dimen.Infinity},
		dimen.Point{X: dimen.Infinity, Y: dimen.Infinity},
	)
}

// settle forces any pending suspended layout to completion before a
// geometry query returns a value, per the Open Question decision recorded
// in DESIGN.md: every public geometry accessor goes through this first.
// neverClock reports a constant zero time, so the wheel's elapsed-time
// check never trips regardless of the timeout the run was started with —
// the same "give Run a clock that always reports zero" trick
// engine/layout's own measureIntrinsicSubtree uses internally via
// zeroClock, to force a nested non-suspendable pass to run to completion.
func (d *Document) settle() {
	if d.state == nil {
		return
	}
	d.state.Run(neverClock)
	d.state = nil
	d.finishGeometry()
}

func neverClock() time.Time { return time.Time{} }

// ---------------------------------------------------------------------------
// Public geometry queries.

// Box returns n's primary box, settling any pending layout first.
func (d *Document) Box(n *node.Node) *box.Box {
	d.settle()
	b, _ := n.PrimaryBox.(*box.Box)
	return b
}

// Rect returns n's content rectangle in document space, settling any
// pending layout first.
func (d *Document) Rect(n *node.Node) (dimen.Rect, bool) {
	b := d.Box(n)
	if b == nil {
		return dimen.Rect{}, false
	}
	return b.ContentRect(), true
}

// View renders v's command list against the document's current geometry,
// settling any pending layout first.
func (d *Document) View(v *view.View) []view.Command {
	d.settle()
	return view.Update(v, d.Grid, d, d)
}

// Resize moves the root box to the viewport's origin, sets its extrinsic
// size to the viewport's size and clears the root's FlagTreeValid and
// FlagFlexValid, so the next Update re-runs the sizing wheel from the root
// against the new dimensions. Descendants' flags and slots are not
// cleared here.
func (d *Document) Resize(viewport dimen.Rect) {
	d.settle()
	d.RootBox.Pos = viewport.TopL
	d.RootBox.H.Invalidate(box.SlotExtrinsic)
	d.RootBox.V.Invalidate(box.SlotExtrinsic)
	d.RootBox.SetSlot(box.Horizontal, box.SlotExtrinsic, viewport.W)
	d.RootBox.SetSlot(box.Vertical, box.SlotExtrinsic, viewport.H)
	d.RootBox.ClearFlags(box.FlagTreeValid | box.FlagFlexValid)
}
