package khipu_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
)

func fixedWidth(w dimen.Dimen) khipu.AdvanceFunc {
	return func(r rune) dimen.Dimen {
		if r == ' ' {
			return w / 2
		}
		return w
	}
}

func TestEncodeMarksWordEnds(t *testing.T) {
	run := khipu.Encode("Hi there", "owner", fixedWidth(10*dimen.BP), true)
	if len(run) != len("Hi there") {
		t.Fatalf("expected %d elements, got %d", len("Hi there"), len(run))
	}
	if !run[0].IsNodeFirst() {
		t.Errorf("expected first element to carry FlagNodeFirst")
	}
	if !run[1].IsWordEnd() {
		t.Errorf("expected 'i' (end of \"Hi\") to be a word end")
	}
	if run[0].IsWordEnd() {
		t.Errorf("expected 'H' to not be a word end")
	}
}

func TestEncodeRoundTripsText(t *testing.T) {
	text := "The quick brown fox"
	run := khipu.Encode(text, nil, fixedWidth(5*dimen.BP), false)
	if run.Text() != text {
		t.Errorf("Text() = %q, want %q", run.Text(), text)
	}
}

func TestWordEndPenaltyIsAlwaysNone(t *testing.T) {
	run := khipu.Encode("ab cd", nil, fixedWidth(1*dimen.BP), false)
	for _, e := range run {
		if e.IsWordEnd() && e.Penalty != khipu.PenaltyNone {
			t.Errorf("word-end element has non-none penalty %v", e.Penalty)
		}
	}
}

func TestInlineObjectRun(t *testing.T) {
	run := khipu.InlineObject(struct{}{}, 40*dimen.BP, "owner", true)
	if len(run) != 1 || !run[0].IsInlineObject() || !run[0].IsNodeFirst() {
		t.Fatalf("unexpected inline object run: %+v", run)
	}
}
