package inline_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/inline"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/knuthplass"
	"github.com/npillmayer-style/quipu/engine/node"
	"github.com/npillmayer-style/quipu/engine/style"
)

func fixedWidth(w dimen.Dimen) khipu.AdvanceFunc {
	return func(r rune) dimen.Dimen { return w }
}

func testEnv() inline.Env {
	return inline.Env{
		Height: func(khipu.Element) dimen.Dimen { return 12 * dimen.BP },
		Space:  func(interface{}) dimen.Dimen { return 5 * dimen.BP },
	}
}

func newTextNode(text string) *node.Node {
	n := node.New(node.TypeText, node.LayoutInline)
	n.Text = text
	n.Style = style.Styling{FontFamily: "serif", FontSize: 11}
	return n
}

func TestSynthesizeProducesOneLinePerSolutionLine(t *testing.T) {
	owner := newTextNode("The quick brown fox jumps over the lazy dog")
	run := khipu.Encode(owner.Text, owner, fixedWidth(10*dimen.BP), true)
	sol, err := knuthplass.Break(run, 120*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 5 * dimen.BP
	}, func(khipu.Element) dimen.Dimen { return 12 * dimen.BP })
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}

	container := inline.NewContainer(owner, box.New())
	changed := container.Synthesize(run, sol, testEnv())
	if !changed {
		t.Fatalf("expected first synthesis to report a change")
	}
	if len(container.Lines) != len(sol.Lines) {
		t.Fatalf("expected %d lines, got %d", len(sol.Lines), len(container.Lines))
	}
	for i, line := range container.Lines {
		if line.Box.FirstElement != sol.Lines[i].From || line.Box.LastElement != sol.Lines[i].To {
			t.Errorf("line %d: element range %d..%d, want %d..%d",
				i, line.Box.FirstElement, line.Box.LastElement, sol.Lines[i].From, sol.Lines[i].To)
		}
		if len(line.Groups) == 1 && line.Groups[0] != line.Box {
			t.Errorf("line %d: single-group line should alias the line box", i)
		}
	}
}

func TestSynthesizeIsIdempotentWithoutChange(t *testing.T) {
	owner := newTextNode("one two three four five")
	run := khipu.Encode(owner.Text, owner, fixedWidth(10*dimen.BP), true)
	sol, err := knuthplass.Break(run, 200*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 5 * dimen.BP
	}, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}

	container := inline.NewContainer(owner, box.New())
	container.Synthesize(run, sol, testEnv())
	firstLineBox := container.Lines[0].Box

	changed := container.Synthesize(run, sol, testEnv())
	if changed {
		t.Errorf("re-synthesizing an unchanged solution should report no change")
	}
	if container.Lines[0].Box != firstLineBox {
		t.Errorf("unchanged line should keep its existing box")
	}
}

func TestSynthesizeSplitsPlacementGroupsByOwner(t *testing.T) {
	a := newTextNode("hello ")
	b := newTextNode("world")
	b.Style.FontFamily = "mono"

	run := append(
		khipu.Encode(a.Text, a, fixedWidth(10*dimen.BP), true),
		khipu.Encode(b.Text, b, fixedWidth(10*dimen.BP), false)...,
	)
	sol, err := knuthplass.Break(run, 500*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 5 * dimen.BP
	}, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
	if len(sol.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(sol.Lines))
	}

	container := inline.NewContainer(a, box.New())
	container.Synthesize(run, sol, testEnv())
	line := container.Lines[0]
	if len(line.Groups) != 2 {
		t.Fatalf("expected 2 placement groups (different owners), got %d", len(line.Groups))
	}
	if line.Layers[0] == nil || line.Layers[1] == nil {
		t.Fatalf("expected a text layer for both groups")
	}
	if line.Layers[0].FontID == line.Layers[1].FontID {
		t.Errorf("groups with different owner fonts should carry different font ids")
	}
}

func TestBuildLineGroupsHaveNoLeadingGap(t *testing.T) {
	a := newTextNode("hello ")
	b := newTextNode("world")
	b.Style.FontFamily = "mono"

	run := append(
		khipu.Encode(a.Text, a, fixedWidth(10*dimen.BP), true),
		khipu.Encode(b.Text, b, fixedWidth(10*dimen.BP), false)...,
	)
	sol, err := knuthplass.Break(run, 500*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 5 * dimen.BP
	}, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}

	container := inline.NewContainer(a, box.New())
	container.Synthesize(run, sol, testEnv())
	line := container.Lines[0]
	if len(line.Groups) != 2 {
		t.Fatalf("expected 2 placement groups, got %d", len(line.Groups))
	}
	if got := line.Groups[0].H.Margin[0]; got != 0 {
		t.Errorf("first group on a line must have no leading gap, got margin %v", got)
	}
}

func TestSynthesizeNeverScalesAnUnscaledLine(t *testing.T) {
	// "CCCC DDDD", 10bp/letter, 0 for the literal space rune plus a 5bp
	// glue at the word end: natural width 4*10 + 5 + 4*10 = 85bp. A
	// knuthplass.Line marked Unscaled must render at that natural width
	// even though AdjustRatio was (wrongly) left non-zero, per spec.md
	// §4.4's rule that the last line of a paragraph is never expanded.
	owner := newTextNode("CCCC DDDD")
	letterWidth := khipu.AdvanceFunc(func(r rune) dimen.Dimen {
		if r == ' ' {
			return 0
		}
		return 10 * dimen.BP
	})
	run := khipu.Encode(owner.Text, owner, letterWidth, true)
	sol := &knuthplass.Solution{
		Lines: []knuthplass.Line{
			{From: 0, To: len(run), Width: 85 * dimen.BP, Height: 12 * dimen.BP, AdjustRatio: 0.9, Unscaled: true},
		},
	}

	container := inline.NewContainer(owner, box.New())
	container.Synthesize(run, sol, testEnv())

	got, ok := container.Lines[0].Box.Slot(box.Horizontal, box.SlotIdeal)
	if !ok {
		t.Fatalf("expected the line box's ideal width to be set")
	}
	if want := 85 * dimen.BP; got != want {
		t.Errorf("unscaled line should keep its natural width, got %v want %v", got, want)
	}
}
