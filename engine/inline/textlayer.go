package inline

import (
	"fmt"
	"strings"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/node"
	"github.com/npillmayer-style/quipu/engine/style"
)

// TextLayer is the visual layer attached to a placement-group box: the
// encoded text, each character's x-position relative to the box's left
// edge, the font it is set in, and a palette/run-index chain encoding
// color and selection transitions across the run (spec.md §4.5).
//
// YPos is left empty: every placement group lies within a single line by
// construction, so a per-character y-offset only matters for vertical or
// otherwise non-horizontal text layout, which the markup grammar this
// module implements has no way to request.
type TextLayer struct {
	Text     string
	XPos     []dimen.Dimen
	YPos     []dimen.Dimen
	FontID   string
	Palette  []style.Color
	RunStart []int // byte offset into Text where each run begins
	RunIndex []int // palette index for the run starting at the matching RunStart
}

// BuildTextLayer constructs the text layer for a non-object placement
// group, accumulating x-positions from element advances and adjusted
// inter-word glue.
func BuildTextLayer(run khipu.Run, g group, adjustRatio float64, env Env) *TextLayer {
	if g.object {
		return nil
	}
	tl := &TextLayer{FontID: fontID(g.owner)}
	var b strings.Builder
	var x dimen.Dimen
	var runColor style.Color
	var runSelected bool
	paletteIdx := make(map[style.Color]int)

	for i := g.from; i < g.to; i++ {
		e := run[i]
		color := ownerColor(e.Owner)
		selected := e.IsSelected()
		if i == g.from || color != runColor || selected != runSelected {
			tl.RunStart = append(tl.RunStart, b.Len())
			tl.RunIndex = append(tl.RunIndex, paletteSlot(tl, paletteIdx, selectionTint(color, selected)))
			runColor, runSelected = color, selected
		}
		tl.XPos = append(tl.XPos, x)
		b.WriteRune(e.Rune)
		x += e.Advance
		if e.IsWordEnd() && i+1 < g.to {
			sw := dimen.Dimen(0)
			if env.Space != nil {
				sw = env.Space(e.Owner)
			}
			x += adjustedGlue(sw, adjustRatio)
		}
	}
	tl.Text = b.String()
	return tl
}

// paletteSlot returns the palette index for c, appending it if new.
func paletteSlot(tl *TextLayer, idx map[style.Color]int, c style.Color) int {
	if i, ok := idx[c]; ok {
		return i
	}
	i := len(tl.Palette)
	tl.Palette = append(tl.Palette, c)
	idx[c] = i
	return i
}

// selectionTint gives selected text its own color: inside the current
// selection c is shaded 40% towards black; outside it, c is returned
// unchanged.
func selectionTint(c style.Color, selected bool) style.Color {
	if !selected {
		return c
	}
	return style.Tint(c, -0.4)
}

func fontID(owner interface{}) string {
	n, ok := owner.(*node.Node)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s@%d", n.Style.FontFamily, n.Style.FontSize)
}

func ownerColor(owner interface{}) style.Color {
	n, ok := owner.(*node.Node)
	if !ok {
		return style.Black
	}
	return n.Style.EffectiveColor()
}
