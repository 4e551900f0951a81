package length_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/length"
)

func TestParseKeywords(t *testing.T) {
	for _, tc := range []struct {
		in   string
		mode length.Mode
	}{
		{"auto", length.Auto},
		{"", length.Auto},
		{"grow", length.Grow},
		{"shrink", length.Shrink},
	} {
		l, err := length.Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if l.Mode != tc.mode {
			t.Errorf("Parse(%q) = mode %s, want %s", tc.in, l.Mode, tc.mode)
		}
	}
}

func TestParseAbsolute(t *testing.T) {
	l, err := length.Parse("12px")
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsAbsolute() {
		t.Fatalf("expected absolute length, got %s", l.Mode)
	}
	if l.Dimen() != 12*dimen.BP {
		t.Errorf("expected 12bp, got %v", l.Dimen())
	}
}

func TestParseFraction(t *testing.T) {
	l, err := length.Parse("2fr")
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsFlexible() {
		t.Fatalf("expected a flexible length")
	}
	if l.Fraction() != 2 {
		t.Errorf("expected fraction 2, got %v", l.Fraction())
	}
}

func TestParsePercentAsFraction(t *testing.T) {
	l, err := length.Parse("50%")
	if err != nil {
		t.Fatal(err)
	}
	if l.Fraction() != 0.5 {
		t.Errorf("expected fraction 0.5, got %v", l.Fraction())
	}
}

func TestResolve(t *testing.T) {
	abs := length.NewAbsolute(10 * dimen.BP)
	if got := abs.Resolve(100*dimen.BP, 50*dimen.BP, 0); got != 10*dimen.BP {
		t.Errorf("absolute Resolve: got %v", got)
	}
	frac := length.NewFractional(0.5)
	if got := frac.Resolve(100*dimen.BP, 40*dimen.BP, 0); got != 20*dimen.BP {
		t.Errorf("fractional Resolve: got %v want 20bp", got)
	}
	grow := length.NewGrow()
	if got := grow.Resolve(100*dimen.BP, 30*dimen.BP, 0); got != 30*dimen.BP {
		t.Errorf("grow Resolve: got %v want 30bp", got)
	}
	auto := length.AutoLength
	if got := auto.Resolve(100*dimen.BP, 30*dimen.BP, 7*dimen.BP); got != 7*dimen.BP {
		t.Errorf("auto Resolve: got %v want content size 7bp", got)
	}
}
