package view

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/style"
)

// DebugFlags are per-view debug toggles carried alongside the view
// rectangle (spec.md §4.7).
type DebugFlags uint8

const (
	// DebugShowBoxBounds draws every visible box's outer rectangle as a
	// hairline, independent of its own background/border.
	DebugShowBoxBounds DebugFlags = 1 << iota
	// DebugShowClipRects draws, after all other commands, the clip
	// rectangles left in the SET_CLIP ring buffer: the last clipRingSize
	// distinct rectangles emitted, not every one.
	DebugShowClipRects
)

// TextRun is the text-layer content view needs from whatever owns a
// placement-group box's text (engine/inline's TextLayer in this module),
// copied into a view-local shape so this package doesn't need to import
// engine/inline directly — the same seam engine/layout uses for
// InlineDriver.
type TextRun struct {
	Text     string
	XPos     []dimen.Dimen
	FontID   string
	Palette  []style.Color
	RunStart []int // byte offset into Text where each run begins
	RunIndex []int // palette index for the run starting at the matching RunStart
}

// TextSource resolves a placement-group box's text layer, if it has one.
// document.go implements this against engine/inline's per-container line
// data.
type TextSource interface {
	TextRun(b *box.Box) (TextRun, bool)
}

// ImageSource resolves a box's image content, if it has one (spec.md §6's
// IMAGE{bounds, image_handle, tint} draw command). A box with an image
// source paints IMAGE instead of RECTANGLE for its own box layer. The
// handle is opaque here for the same reason TextRun copies its shape
// in-package rather than importing it: document.go implements this
// against engine/backend.ImageHandle values without this package needing
// to import engine/backend.
type ImageSource interface {
	Image(b *box.Box) (handle interface{}, tint style.Color, ok bool)
}

// View is a single document-space viewport: a rectangle to query the grid
// against and the debug flags that modify command emission.
type View struct {
	Rect  dimen.Rect
	Debug DebugFlags

	stamp uint64
}

// NewView returns a view over rect with no debug flags set.
func NewView(rect dimen.Rect) *View {
	return &View{Rect: rect}
}

// clipRingSize is the number of most-recently emitted clip rectangles
// view remembers to suppress redundant SET_CLIP commands (spec.md §4.7).
const clipRingSize = 4

// Update re-queries grid for the boxes overlapping v's rectangle, marks
// them visible, and returns the ordered command list to paint them. text
// and images may each be nil if the tree has no inline text or no image
// nodes, respectively.
func Update(v *View, grid *box.Grid, text TextSource, images ImageSource) []Command {
	v.stamp++
	boxes, _ := grid.QueryRect(v.Rect, 0, true)

	var headers []commandHeader
	for _, b := range boxes {
		b.VisibilityStamp = v.stamp
		if images != nil {
			if handle, tint, ok := images.Image(b); ok {
				headers = append(headers, commandHeader{kind: layerImage, box: b, imgHandle: handle, imgTint: tint, sortKey: sortKey(b, 0, 0)})
			} else {
				headers = append(headers, commandHeader{kind: layerBox, box: b, sortKey: sortKey(b, 0, 0)})
			}
		} else {
			headers = append(headers, commandHeader{kind: layerBox, box: b, sortKey: sortKey(b, 0, 0)})
		}
		if text == nil {
			continue
		}
		if run, ok := text.TextRun(b); ok {
			headers = append(headers, commandHeader{kind: layerText, box: b, run: &run, sortKey: sortKey(b, 0, 1)})
		}
	}
	radixSort(headers)
	return emit(headers, v.Debug)
}

// sortKey packs (depth+depthOffset)<<3 | key, per spec.md §4.7, so a
// painter's-algorithm scan in ascending order draws shallower (background)
// boxes before their descendants.
func sortKey(b *box.Box, depthOffset int32, key uint8) uint64 {
	depth := uint64(int64(b.Depth) + int64(depthOffset))
	return depth<<3 | uint64(key&0x7)
}

type layerKind uint8

const (
	layerBox layerKind = iota
	layerText
	layerImage
)

type commandHeader struct {
	kind      layerKind
	sortKey   uint64
	box       *box.Box
	run       *TextRun    // set only for layerText
	imgHandle interface{} // set only for layerImage
	imgTint   style.Color // set only for layerImage
}
