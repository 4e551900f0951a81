package knuthplass_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/knuthplass"
	"github.com/npillmayer-style/quipu/engine/khipu/linebreak"
)

func constWidth(w dimen.Dimen) khipu.AdvanceFunc {
	return func(r rune) dimen.Dimen { return w }
}

func TestBreakProducesLinesCoveringWholeRun(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	run := khipu.Encode(text, nil, constWidth(10*dimen.BP), false)
	sol, err := knuthplass.Break(run, 120*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 5 * dimen.BP
	}, func(khipu.Element) dimen.Dimen { return 12 * dimen.BP })
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
	if len(sol.Lines) == 0 {
		t.Fatalf("expected at least one line")
	}
	total := 0
	for i, l := range sol.Lines {
		if i == 0 && l.From != 0 {
			t.Errorf("first line should start at element 0, got %d", l.From)
		}
		total += l.To - l.From
	}
	last := sol.Lines[len(sol.Lines)-1]
	if last.To != len(run) {
		t.Errorf("last line should end at %d, got %d", len(run), last.To)
	}
}

func TestBreakLongParagraphSucceeds(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven twelve"
	run := khipu.Encode(text, nil, constWidth(8*dimen.BP), false)
	_, err := knuthplass.Break(run, 60*dimen.BP, linebreak.DefaultParameters, func(khipu.Run, int) dimen.Dimen {
		return 4 * dimen.BP
	}, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
}

func TestBreakSingleWordNoSpace(t *testing.T) {
	run := khipu.Encode("supercalifragilisticexpialidocious", nil, constWidth(5*dimen.BP), false)
	sol, err := knuthplass.Break(run, 40*dimen.BP, nil, nil, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
	if len(sol.Lines) != 1 {
		t.Errorf("expected a single unbreakable line, got %d", len(sol.Lines))
	}
}

func TestBreakTracksLineHeight(t *testing.T) {
	text := "tall word"
	run := khipu.Encode(text, nil, constWidth(10*dimen.BP), false)
	tallRune := rune('w')
	sol, err := knuthplass.Break(run, 200*dimen.BP, nil, nil, func(e khipu.Element) dimen.Dimen {
		if e.Rune == tallRune {
			return 30 * dimen.BP
		}
		return 10 * dimen.BP
	})
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
	if len(sol.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(sol.Lines))
	}
	if sol.Lines[0].Height != 30*dimen.BP {
		t.Errorf("expected line height to track tallest element, got %v", sol.Lines[0].Height)
	}
}

func TestBreakLastLineIsUnscaled(t *testing.T) {
	// spec.md §8 S3: "AAAA BBBB CCCC", each word 40 units wide, 8 units of
	// glue between words, container width 100 -> "AAAA BBBB" (slack 12
	// absorbed by stretch) then "CCCC" alone, unscaled.
	text := "AAAA BBBB CCCC"
	letterWidth := khipu.AdvanceFunc(func(r rune) dimen.Dimen {
		if r == ' ' {
			return 0
		}
		return 10 * dimen.BP
	})
	run := khipu.Encode(text, nil, letterWidth, false)
	sol, err := knuthplass.Break(run, 100*dimen.BP, nil, func(khipu.Run, int) dimen.Dimen {
		return 8 * dimen.BP
	}, nil)
	if err != nil {
		t.Fatalf("Break failed: %v", err)
	}
	if len(sol.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(sol.Lines))
	}
	if sol.Lines[0].Unscaled {
		t.Errorf("first line must not be unscaled")
	}
	if !sol.Lines[1].Unscaled {
		t.Errorf("last line must be unscaled")
	}
	if sol.Lines[1].AdjustRatio != 0 {
		t.Errorf("unscaled last line must carry a zero adjust ratio, got %v", sol.Lines[1].AdjustRatio)
	}
	if sol.Lines[1].Width != 40*dimen.BP {
		t.Errorf("expected last line width 40bp, got %v", sol.Lines[1].Width)
	}
}
