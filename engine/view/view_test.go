package view_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/style"
	"github.com/npillmayer-style/quipu/engine/view"
)

func placed(x, y, w, h dimen.Dimen, depth int32) *box.Box {
	b := box.New()
	b.Pos = dimen.Point{X: x, Y: y}
	b.SetSlot(box.Horizontal, box.SlotExtrinsic, w)
	b.SetSlot(box.Vertical, box.SlotExtrinsic, h)
	b.Depth = depth
	return b
}

func TestUpdateMarksQueriedBoxesVisible(t *testing.T) {
	grid := box.NewGrid()
	b1 := placed(0, 0, 10*dimen.BP, 10*dimen.BP, 0)
	b2 := placed(1000*dimen.BP, 1000*dimen.BP, 10*dimen.BP, 10*dimen.BP, 0)
	grid.Insert(b1)
	grid.Insert(b2)

	v := view.NewView(dimen.Rect{TopL: dimen.Point{}, W: 100 * dimen.BP, H: 100 * dimen.BP})
	view.Update(v, grid, nil, nil)

	if b1.VisibilityStamp == 0 {
		t.Errorf("expected b1 (inside the view rect) to be marked visible")
	}
	if b2.VisibilityStamp != 0 {
		t.Errorf("expected b2 (far outside the view rect) to stay unmarked")
	}
}

func TestUpdateOrdersCommandsShallowestFirst(t *testing.T) {
	grid := box.NewGrid()
	deep := placed(5*dimen.BP, 5*dimen.BP, 5*dimen.BP, 5*dimen.BP, 3)
	shallow := placed(0, 0, 50*dimen.BP, 50*dimen.BP, 0)
	grid.Insert(deep)
	grid.Insert(shallow)

	v := view.NewView(dimen.Rect{TopL: dimen.Point{}, W: 100 * dimen.BP, H: 100 * dimen.BP})
	cmds := view.Update(v, grid, nil, nil)

	var order []*box.Box
	for _, c := range cmds {
		if c.Kind == view.CmdDrawBox {
			order = append(order, c.Box)
		}
	}
	if len(order) != 2 || order[0] != shallow || order[1] != deep {
		t.Fatalf("expected [shallow, deep] draw order, got %v", order)
	}
}

type stubSource struct {
	runs map[*box.Box]view.TextRun
}

func (s stubSource) TextRun(b *box.Box) (view.TextRun, bool) {
	r, ok := s.runs[b]
	return r, ok
}

func TestUpdateCoalescesAdjacentTextRunsSharingFontAndY(t *testing.T) {
	grid := box.NewGrid()
	g1 := placed(0, 0, 20*dimen.BP, 10*dimen.BP, 1)
	g2 := placed(20*dimen.BP, 0, 20*dimen.BP, 10*dimen.BP, 1)
	grid.Insert(g1)
	grid.Insert(g2)

	src := stubSource{runs: map[*box.Box]view.TextRun{
		g1: {Text: "Hello", XPos: []dimen.Dimen{0, 5 * dimen.BP}, FontID: "f@12"},
		g2: {Text: "World", XPos: []dimen.Dimen{0, 5 * dimen.BP}, FontID: "f@12"},
	}}

	v := view.NewView(dimen.Rect{TopL: dimen.Point{}, W: 100 * dimen.BP, H: 100 * dimen.BP})
	cmds := view.Update(v, grid, src, nil)

	var batches []*view.TextBatch
	for _, c := range cmds {
		if c.Kind == view.CmdDrawText {
			batches = append(batches, c.Batch)
		}
	}
	if len(batches) != 1 {
		t.Fatalf("expected one coalesced text batch, got %d", len(batches))
	}
	if batches[0].Text != "HelloWorld" {
		t.Errorf("batch text = %q, want %q", batches[0].Text, "HelloWorld")
	}
}

type stubImageSource struct {
	handles map[*box.Box]string
}

func (s stubImageSource) Image(b *box.Box) (interface{}, style.Color, bool) {
	h, ok := s.handles[b]
	if !ok {
		return nil, style.Color{}, false
	}
	return h, style.Color{R: 255, G: 255, B: 255, A: 255}, true
}

func TestUpdateEmitsDrawImageInsteadOfDrawBoxForImageSources(t *testing.T) {
	grid := box.NewGrid()
	picture := placed(0, 0, 10*dimen.BP, 10*dimen.BP, 0)
	plain := placed(50*dimen.BP, 0, 10*dimen.BP, 10*dimen.BP, 0)
	grid.Insert(picture)
	grid.Insert(plain)

	images := stubImageSource{handles: map[*box.Box]string{picture: "img-1"}}
	v := view.NewView(dimen.Rect{TopL: dimen.Point{}, W: 100 * dimen.BP, H: 100 * dimen.BP})
	cmds := view.Update(v, grid, nil, images)

	var sawImage, sawBox bool
	for _, c := range cmds {
		switch c.Kind {
		case view.CmdDrawImage:
			sawImage = true
			if c.Box != picture || c.Image != "img-1" {
				t.Errorf("expected CmdDrawImage for picture with handle img-1, got box=%v image=%v", c.Box, c.Image)
			}
		case view.CmdDrawBox:
			sawBox = true
			if c.Box != plain {
				t.Errorf("expected CmdDrawBox only for the plain box, got %v", c.Box)
			}
		}
	}
	if !sawImage || !sawBox {
		t.Fatalf("expected both a CmdDrawImage and a CmdDrawBox command, got %+v", cmds)
	}
}
