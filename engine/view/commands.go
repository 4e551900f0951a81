package view

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/style"
)

// CommandKind tags a Command's payload.
type CommandKind uint8

const (
	CmdSetClip CommandKind = iota
	CmdDrawBox
	CmdDrawImage
	CmdDrawText
	CmdDrawBounds // debug hairline, emitted only when DebugShowBoxBounds is set
)

// Command is one entry of the ordered draw-command list view.Update
// produces.
type Command struct {
	Kind CommandKind

	ClipRect dimen.Rect  // CmdSetClip, CmdDrawBounds (for the debug rect itself)
	Box      *box.Box    // CmdDrawBox, CmdDrawImage, CmdDrawBounds
	Image    interface{} // CmdDrawImage: the backend.ImageHandle to paint
	Tint     style.Color // CmdDrawImage
	Batch    *TextBatch  // CmdDrawText
}

// TextBatch is one coalesced DRAW_TEXT command: every character in it
// shares a font, clip rectangle and y-coordinate (the box's Pos.Y),
// per spec.md §4.7. Characters from multiple placement-group boxes may be
// merged into one batch when they're adjacent in paint order and share
// these three properties.
type TextBatch struct {
	FontID   string
	ClipRect dimen.Rect
	Y        dimen.Dimen

	Text     string
	XPos     []dimen.Dimen // absolute x, one per rune in Text
	Palette  []style.Color
	RunStart []int // byte offset into Text where each run begins
	RunIndex []int // palette index for the run starting at the matching RunStart
}

// emit scans sorted headers and produces the final command list: SET_CLIP
// commands are suppressed against a ring buffer of the last clipRingSize
// distinct rectangles, and consecutive DRAW_TEXT headers sharing font,
// clip rect and y are coalesced into one TextBatch.
func emit(headers []commandHeader, debug DebugFlags) []Command {
	var out []Command
	var ring [clipRingSize]dimen.Rect
	var ringLen int
	var lastClip dimen.Rect
	haveClip := false
	var pendingBatch *TextBatch

	flushBatch := func() {
		if pendingBatch != nil {
			out = append(out, Command{Kind: CmdDrawText, Batch: pendingBatch})
			pendingBatch = nil
		}
	}
	setClip := func(r dimen.Rect) {
		if haveClip && r == lastClip {
			return
		}
		for i := 0; i < ringLen; i++ {
			if ring[i] == r {
				lastClip, haveClip = r, true
				return // already emitted recently; no need to repeat it
			}
		}
		out = append(out, Command{Kind: CmdSetClip, ClipRect: r})
		if ringLen < clipRingSize {
			ring[ringLen] = r
			ringLen++
		} else {
			copy(ring[:], ring[1:])
			ring[clipRingSize-1] = r
		}
		lastClip, haveClip = r, true
	}

	for _, h := range headers {
		clip := h.box.ClipRect
		switch h.kind {
		case layerBox:
			flushBatch()
			setClip(clip)
			out = append(out, Command{Kind: CmdDrawBox, Box: h.box})
			if debug&DebugShowBoxBounds != 0 {
				out = append(out, Command{Kind: CmdDrawBounds, Box: h.box, ClipRect: h.box.OuterRect()})
			}
		case layerImage:
			flushBatch()
			setClip(clip)
			out = append(out, Command{Kind: CmdDrawImage, Box: h.box, Image: h.imgHandle, Tint: h.imgTint})
			if debug&DebugShowBoxBounds != 0 {
				out = append(out, Command{Kind: CmdDrawBounds, Box: h.box, ClipRect: h.box.OuterRect()})
			}
		case layerText:
			y := h.box.Pos.Y
			if pendingBatch != nil && (pendingBatch.FontID != h.run.FontID || pendingBatch.ClipRect != clip || pendingBatch.Y != y) {
				flushBatch()
			}
			setClip(clip)
			if pendingBatch == nil {
				pendingBatch = &TextBatch{FontID: h.run.FontID, ClipRect: clip, Y: y}
			}
			appendRun(pendingBatch, h.box, h.run)
		}
	}
	flushBatch()
	if debug&DebugShowClipRects != 0 {
		for i := 0; i < ringLen; i++ {
			out = append(out, Command{Kind: CmdDrawBounds, ClipRect: ring[i]})
		}
	}
	return out
}

// appendRun merges one box's TextRun into batch, translating its
// relative x-positions to absolute document-space coordinates and
// remapping palette indices into the batch's own palette.
func appendRun(batch *TextBatch, b *box.Box, run *TextRun) {
	idx := make(map[int]int, len(run.Palette))
	for i, c := range run.Palette {
		idx[i] = paletteSlot(batch, c)
	}
	base := len(batch.Text)
	for ri, start := range run.RunStart {
		batch.RunStart = append(batch.RunStart, base+start)
		batch.RunIndex = append(batch.RunIndex, idx[run.RunIndex[ri]])
	}
	for _, x := range run.XPos {
		batch.XPos = append(batch.XPos, b.Pos.X+x)
	}
	batch.Text += run.Text
}

func paletteSlot(batch *TextBatch, c style.Color) int {
	for i, existing := range batch.Palette {
		if existing == c {
			return i
		}
	}
	batch.Palette = append(batch.Palette, c)
	return len(batch.Palette) - 1
}
