package style

import "github.com/npillmayer/schuko/gtrace"
import "github.com/npillmayer/schuko/tracing"

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Justification is the paragraph justification mode.
type Justification uint8

const (
	JustifyLeft Justification = iota
	JustifyRight
	JustifyCenter
	JustifyFull
)

// WhiteSpaceMode controls how runs of whitespace in source text are
// collapsed before paragraph elements are built.
type WhiteSpaceMode uint8

const (
	WhiteSpaceNormal WhiteSpaceMode = iota // collapse runs, allow wrap
	WhiteSpacePre                          // preserve verbatim, allow wrap
	WhiteSpaceNoWrap                       // collapse runs, forbid wrap
)

// WrapMode controls whether an inline container may break at all.
type WrapMode uint8

const (
	WrapNormal WrapMode = iota
	WrapNone
)

// Flags are boolean style attributes, bit-packed so a Styling value stays
// small and cheap to copy down the tree.
type Flags uint16

const (
	FlagBold Flags = 1 << iota
	FlagItalic
	FlagUnderline
	FlagStrikethrough
	FlagSmallCaps
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Styling is the resolved set of style properties that applies to a node:
// font selection, color and tint, boolean flags, paragraph justification,
// white-space handling, wrap mode, extra line leading and a first-line
// hanging indent.
type Styling struct {
	FontFamily    string
	FontSize      int // in points
	Color         Color
	Tint          float64 // -1..1, blended towards black/white
	Flags         Flags
	Justification Justification
	WhiteSpace    WhiteSpaceMode
	WrapMode      WrapMode
	Leading       int // extra inter-line spacing, in points
	HangingIndent int // first-line indent, in points
}

// EffectiveColor returns Color with Tint applied.
func (s Styling) EffectiveColor() Color {
	return Tint(s.Color, s.Tint)
}

// Resolve reads the current scope of regs into a Styling value.
func Resolve(regs *Registers) Styling {
	return Styling{
		FontFamily:    regs.S(PFontFamily),
		FontSize:      regs.N(PFontSize),
		Color:         regs.Get(PColor).(Color),
		Tint:          regs.Get(PTint).(float64),
		Justification: regs.Get(PJustification).(Justification),
		WhiteSpace:    regs.Get(PWhiteSpace).(WhiteSpaceMode),
		WrapMode:      regs.Get(PWrapMode).(WrapMode),
		Leading:       regs.N(PLeading),
		HangingIndent: regs.N(PHangingIndent),
		Flags:         regs.F(PFlags),
	}
}

// Apply pushes every non-zero-value field of an override onto regs within
// the current scope. Zero values are treated as "not set by this style
// rule" and left unchanged, matching the cascade semantics of spec.md §6
// (a declaration only overrides the properties it names).
func Apply(regs *Registers, override Styling) {
	if override.FontFamily != "" {
		regs.Push(PFontFamily, override.FontFamily)
	}
	if override.FontSize != 0 {
		regs.Push(PFontSize, override.FontSize)
	}
	if override.Color != (Color{}) {
		regs.Push(PColor, override.Color)
	}
	if override.Tint != 0 {
		regs.Push(PTint, override.Tint)
	}
	if override.Justification != 0 {
		regs.Push(PJustification, override.Justification)
	}
	if override.WhiteSpace != 0 {
		regs.Push(PWhiteSpace, override.WhiteSpace)
	}
	if override.WrapMode != 0 {
		regs.Push(PWrapMode, override.WrapMode)
	}
	if override.Leading != 0 {
		regs.Push(PLeading, override.Leading)
	}
	if override.HangingIndent != 0 {
		regs.Push(PHangingIndent, override.HangingIndent)
	}
	if override.Flags != 0 {
		regs.Push(PFlags, override.Flags)
	}
}
