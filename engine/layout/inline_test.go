package layout_test

import (
	"testing"
	"time"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/layout"
)

type inlineOwnerStub struct{}

func (inlineOwnerStub) IsInlineContainer() bool { return true }

// fakeDriver stands in for engine/khipu + .../knuthplass + engine/inline,
// wired together by document.go in the real module.
type fakeDriver struct {
	preferredWidth dimen.Dimen
	lineHeight     dimen.Dimen
	brokenAt       dimen.Dimen // maxWidth Break was actually called with
}

func (d *fakeDriver) PreferredWidth(b *box.Box) (dimen.Dimen, error) {
	return d.preferredWidth, nil
}

func (d *fakeDriver) Break(b *box.Box, maxWidth dimen.Dimen) (dimen.Dimen, error) {
	d.brokenAt = maxWidth
	return d.lineHeight, nil
}

// TestInlineShrinkContainerMatchesS2 reproduces spec.md §8's S2 scenario:
// a shrink-sized inline container whose content is "Hello World" (preferred
// width 93) ends up extrinsic width 93 and height equal to the one
// resulting line's height.
func TestInlineShrinkContainerMatchesS2(t *testing.T) {
	root := box.New()
	root.Owner = inlineOwnerStub{}
	root.H.Ideal = length.NewShrink()
	// V stays Auto (box.New()'s default), driven by the one broken line.

	driver := &fakeDriver{preferredWidth: 93 * dimen.BP, lineHeight: 12 * dimen.BP}
	st := layout.NewState(root, 0, driver)
	done, err := st.Run(time.Now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !done {
		t.Fatalf("expected a zero-timeout run to complete in one call")
	}

	w, ok := root.Slot(box.Horizontal, box.SlotExtrinsic)
	if !ok || w != 93*dimen.BP {
		t.Errorf("width = %v (valid=%v), want 93bp", w, ok)
	}
	h, ok := root.Slot(box.Vertical, box.SlotExtrinsic)
	if !ok || h != 12*dimen.BP {
		t.Errorf("height = %v (valid=%v), want 12bp", h, ok)
	}
	if driver.brokenAt != 93*dimen.BP {
		t.Errorf("Break was called with maxWidth %v, want the resolved shrink width 93bp", driver.brokenAt)
	}
}
