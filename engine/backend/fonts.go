package backend

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/style"
)

// FontHandle is an opaque reference a FontMatcher hands back from
// MatchFont and expects in return from FontMetrics/TextMeasurer calls.
// Host implementations are free to make it whatever they like — an
// index into a font table, a pointer to a loaded face, anything with
// value identity — following the opaqueness of core/font's *TypeCase
// in the teacher, generalized to an interface{} so this package stays
// independent of any particular font-loading library.
type FontHandle interface{}

// FontMetrics is the fixed set of whole-font measurements the sizing
// wheel and line breaker need without measuring any actual text:
// line height, the em square's width, and the width/stretch/shrink of
// an interword space (feeding directly into
// .../linebreak.Parameters' glue), plus the width of a paragraph's
// first-line indent.
type FontMetrics struct {
	Height               dimen.Dimen
	EmWidth              dimen.Dimen
	SpaceWidth           dimen.Dimen
	SpaceStretch         dimen.Dimen
	SpaceShrink          dimen.Dimen
	ParagraphIndentWidth dimen.Dimen
}

// FontMatcher resolves a style's face/size/flags to a FontHandle and
// reports that handle's whole-font metrics (spec.md §6's match_font
// and font_metrics calls).
type FontMatcher interface {
	// MatchFont resolves a font family name, a size in points, and a
	// bold/italic/... flag set to a handle. Implementations substitute
	// a fallback rather than fail outright, per spec.md §7's "text
	// rendering never fails" — MatchFont's error return is for
	// unrecoverable back-end failure, not a plain missing family.
	MatchFont(face string, size int, flags style.Flags) (FontHandle, error)
	FontMetrics(h FontHandle) (FontMetrics, error)
}

// TextMeasurer measures a run of UTF-8 text shaped with a given font
// handle (spec.md §6's measure_text). The wire format measure_text
// describes is 1/64-unit (26.6 fixed-point) advances; implementations
// are responsible for converting those into dimen.Dimen (1/65536
// scaled points) before returning, so every caller in this module only
// ever sees design units.
type TextMeasurer interface {
	// MeasureText returns one advance per rune of text (not per byte —
	// implementations decode the UTF-8 themselves), the run's total
	// width, and the font's cell height at h's size.
	MeasureText(h FontHandle, text string) (advances []dimen.Dimen, width dimen.Dimen, height dimen.Dimen, err error)
}
