package style_test

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/style"
)

func TestRegistersScoping(t *testing.T) {
	regs := style.NewRegisters()
	if regs.S(style.PFontFamily) != "serif" {
		t.Fatalf("expected default font family serif, got %s", regs.S(style.PFontFamily))
	}
	regs.BeginGroup()
	regs.Push(style.PFontFamily, "sans")
	if regs.S(style.PFontFamily) != "sans" {
		t.Errorf("expected overridden font family sans, got %s", regs.S(style.PFontFamily))
	}
	regs.EndGroup()
	if regs.S(style.PFontFamily) != "serif" {
		t.Errorf("expected font family to revert to serif after EndGroup, got %s", regs.S(style.PFontFamily))
	}
}

func TestRegistersNestedScopes(t *testing.T) {
	regs := style.NewRegisters()
	regs.BeginGroup()
	regs.Push(style.PFontSize, 14)
	regs.BeginGroup()
	regs.Push(style.PFontSize, 18)
	if regs.N(style.PFontSize) != 18 {
		t.Fatalf("expected innermost override 18, got %d", regs.N(style.PFontSize))
	}
	regs.EndGroup()
	if regs.N(style.PFontSize) != 14 {
		t.Errorf("expected to fall back to 14, got %d", regs.N(style.PFontSize))
	}
	regs.EndGroup()
	if regs.N(style.PFontSize) != 12 {
		t.Errorf("expected to fall back to default 12, got %d", regs.N(style.PFontSize))
	}
}

func TestParseColorHex(t *testing.T) {
	c, err := style.ParseColor("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("expected pure red, got %+v", c)
	}
}

func TestParseColorRGBA(t *testing.T) {
	c, err := style.ParseColor("rgba(10,20,30,0.5)")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("expected rgb(10,20,30), got %+v", c)
	}
	if c.A < 126 || c.A > 128 {
		t.Errorf("expected alpha ~127, got %d", c.A)
	}
}

func TestTintTowardsWhite(t *testing.T) {
	tinted := style.Tint(style.Black, 1)
	if tinted != style.White {
		t.Errorf("expected full white tint, got %+v", tinted)
	}
}

func TestFlagsRoundTripThroughResolveAndApply(t *testing.T) {
	regs := style.NewRegisters()
	if style.Resolve(regs).Flags != 0 {
		t.Fatalf("expected no flags set by default")
	}
	regs.BeginGroup()
	style.Apply(regs, style.Styling{Flags: style.FlagBold | style.FlagItalic})
	resolved := style.Resolve(regs)
	if !resolved.Flags.Has(style.FlagBold) || !resolved.Flags.Has(style.FlagItalic) {
		t.Errorf("expected bold and italic to resolve after Apply, got %v", resolved.Flags)
	}
	regs.EndGroup()
	if style.Resolve(regs).Flags != 0 {
		t.Errorf("expected flags to revert to default after EndGroup")
	}
}

func TestApplyOnlyOverridesSetFields(t *testing.T) {
	regs := style.NewRegisters()
	regs.BeginGroup()
	style.Apply(regs, style.Styling{FontSize: 20})
	if regs.N(style.PFontSize) != 20 {
		t.Errorf("expected font size override to apply, got %d", regs.N(style.PFontSize))
	}
	if regs.S(style.PFontFamily) != "serif" {
		t.Errorf("expected font family to remain default serif, got %s", regs.S(style.PFontFamily))
	}
	regs.EndGroup()
}
