package quipu

import (
	"testing"

	"github.com/npillmayer-style/quipu/engine/box"
	"github.com/npillmayer-style/quipu/engine/khipu/knuthplass"
	"github.com/npillmayer-style/quipu/engine/style"
)

func TestApplyJustificationLeavesFlushLinesAlone(t *testing.T) {
	sol := &knuthplass.Solution{Lines: []knuthplass.Line{
		{AdjustRatio: 0.4},
		{AdjustRatio: -0.2},
	}}
	applyJustification(sol, style.JustifyFull)
	if sol.Lines[0].AdjustRatio != 0.4 || sol.Lines[1].AdjustRatio != -0.2 {
		t.Errorf("flush justification must not alter adjust ratios, got %+v", sol.Lines)
	}
}

func TestApplyJustificationSuppressesStretchOnly(t *testing.T) {
	sol := &knuthplass.Solution{Lines: []knuthplass.Line{
		{AdjustRatio: 0.4},           // underfull: would stretch, must be suppressed
		{AdjustRatio: -0.3},          // overfull: shrink is kept
		{AdjustRatio: 0.7, Unscaled: true}, // last line: left untouched either way
	}}
	applyJustification(sol, style.JustifyLeft)
	if sol.Lines[0].AdjustRatio != 0 {
		t.Errorf("underfull line under left justification must not stretch, got %v", sol.Lines[0].AdjustRatio)
	}
	if sol.Lines[1].AdjustRatio != -0.3 {
		t.Errorf("overfull line must still shrink under left justification, got %v", sol.Lines[1].AdjustRatio)
	}
	if sol.Lines[2].AdjustRatio != 0.7 {
		t.Errorf("an unscaled line's ratio must not be touched, got %v", sol.Lines[2].AdjustRatio)
	}
}

func TestJustificationAlignmentMapping(t *testing.T) {
	cases := []struct {
		mode style.Justification
		want box.Alignment
	}{
		{style.JustifyLeft, box.AlignStart},
		{style.JustifyFull, box.AlignStart},
		{style.JustifyRight, box.AlignEnd},
		{style.JustifyCenter, box.AlignMiddle},
	}
	for _, c := range cases {
		if got := justificationAlignment(c.mode); got != c.want {
			t.Errorf("justificationAlignment(%v) = %v, want %v", c.mode, got, c.want)
		}
	}
}
