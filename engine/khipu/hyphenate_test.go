package khipu_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/khipu"
)

func TestHyphenateSplitsOnPattern(t *testing.T) {
	h := khipu.NewHyphenator(4)
	// a toy pattern set, not a real Liang dictionary: "hy1phen" permits a
	// break between 'y' and 'p'.
	h.AddPatterns([]string{"hy1phen", "phe1n"})
	syllables, ok := h.Hyphenate("hyphen")
	if !ok {
		t.Fatalf("expected a hyphenation to be found")
	}
	if len(syllables) < 2 {
		t.Fatalf("expected at least 2 syllables, got %v", syllables)
	}
}

func TestHyphenateShortWordUnaffected(t *testing.T) {
	h := khipu.NewHyphenator(8)
	syllables, ok := h.Hyphenate("cat")
	if ok {
		t.Errorf("expected short word to be left unsplit")
	}
	if len(syllables) != 1 || syllables[0] != "cat" {
		t.Errorf("expected the word unchanged, got %v", syllables)
	}
}

func TestHyphenateNoPatternMatch(t *testing.T) {
	h := khipu.NewHyphenator(3)
	syllables, ok := h.Hyphenate("zzzzzzzz")
	if ok {
		t.Errorf("expected no hyphenation without matching patterns")
	}
	if syllables[0] != "zzzzzzzz" {
		t.Errorf("expected word returned unchanged")
	}
}
