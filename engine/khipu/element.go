/*
Package khipu converts an inline container's text into a flat array of
paragraph elements, the atomic units the line breaker works on.

Calling this package "khipu" keeps faith with the teacher's naming: the
Inca knot-cords it was named for are a record of discrete counted units
strung one after another, which is exactly what a paragraph element
array is, just unrolled into a Go slice instead of knots on a string.
Unlike the teacher's box-and-glue knot list (one heavyweight Knot
interface value per word, kern or glue), an inline container here is
reduced to one small fixed-size record per code point or inline object,
per spec.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package khipu

import (
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/uax29"

	"github.com/npillmayer-style/quipu/core/dimen"
)

// T traces to a global engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// PenaltyType classifies the break opportunity (if any) following a
// paragraph element.
type PenaltyType uint8

const (
	PenaltyNone PenaltyType = iota
	PenaltyProhibitBreak
	PenaltyMultipartHyphen
	PenaltyInterCharacter
	PenaltyForceBreak
)

// Flags are per-element boolean attributes.
type Flags uint8

const (
	FlagWordEnd Flags = 1 << iota
	FlagInlineObject
	FlagNodeFirst
	FlagSelected
)

// Has reports whether f is set in flags.
func (flags Flags) Has(f Flags) bool {
	return flags&f != 0
}

// Element is one code point or one inline object, carrying its measured
// advance and break-opportunity classification.
type Element struct {
	Rune    rune        // the code point; 0 for inline objects
	Advance dimen.Dimen // fixed-point measured advance
	Penalty PenaltyType
	Flags   Flags
	Object  interface{} // payload for inline objects (FlagInlineObject set)
	Owner   interface{} // the producing node, for placement-group grouping
}

// IsWordEnd reports whether this element ends a word.
func (e Element) IsWordEnd() bool { return e.Flags.Has(FlagWordEnd) }

// IsInlineObject reports whether this element stands for an embedded object
// rather than a code point.
func (e Element) IsInlineObject() bool { return e.Flags.Has(FlagInlineObject) }

// IsNodeFirst reports whether this element is the first one contributed by
// its owning node.
func (e Element) IsNodeFirst() bool { return e.Flags.Has(FlagNodeFirst) }

// IsSelected reports whether this element lies within the current text
// selection.
func (e Element) IsSelected() bool { return e.Flags.Has(FlagSelected) }

// Run is a contiguous slice of paragraph elements, the representation an
// inline container's text is reduced to before line breaking.
type Run []Element

// Text reconstructs the run's code points as a string, substituting a
// space for every inline object.
func (r Run) Text() string {
	var b strings.Builder
	for _, e := range r {
		if e.IsInlineObject() {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(e.Rune)
	}
	return b.String()
}

// Measurer supplies per-rune advances for a given text style. It is the
// khipu-level view of the back-end text measurer (spec.md §7).
type Measurer interface {
	Advance(r rune) dimen.Dimen
}

// AdvanceFunc adapts a plain function to Measurer.
type AdvanceFunc func(r rune) dimen.Dimen

// Advance implements Measurer.
func (f AdvanceFunc) Advance(r rune) dimen.Dimen { return f(r) }

// Encode converts text owned by a single node into a Run, measuring every
// code point's advance with m and marking word ends via the UAX#29 word
// boundary algorithm (whitespace segments carry no word end, so each
// inter-word gap yields a single glue). nodeFirst marks the run's first element with
// FlagNodeFirst; owner is stamped on every element for placement-group
// grouping downstream (spec.md §4.5).
func Encode(text string, owner interface{}, m Measurer, nodeFirst bool) Run {
	if text == "" {
		return nil
	}
	wordEnds := wordEndSet(text)
	run := make(Run, 0, len(text))
	first := nodeFirst
	for i, r := range text {
		var flags Flags
		if first {
			flags |= FlagNodeFirst
			first = false
		}
		if wordEnds[i] {
			flags |= FlagWordEnd
		}
		e := Element{
			Rune:    r,
			Advance: m.Advance(r),
			Penalty: penaltyFor(r, wordEnds[i]),
			Flags:   flags,
			Owner:   owner,
		}
		run = append(run, e)
	}
	return run
}

// InlineObject returns a single-element run standing for an embedded
// object (image, widget) of the given advance.
func InlineObject(object interface{}, advance dimen.Dimen, owner interface{}, nodeFirst bool) Run {
	flags := FlagInlineObject
	if nodeFirst {
		flags |= FlagNodeFirst
	}
	return Run{{Advance: advance, Penalty: PenaltyNone, Flags: flags, Object: object, Owner: owner}}
}

// penaltyFor classifies the break opportunity following a code point.
// Whitespace always carries PenaltyNone, so it never prohibits a break;
// the line breaker evaluates the break at the word end preceding it.
// Invariant per spec.md §8.4: every is-word-end element's penalty is
// none, and every element generated by a hyphenation delimiter carries
// PenaltyMultipartHyphen (stamped later by the caller at the syllable
// boundaries Hyphenator.Hyphenate returns).
func penaltyFor(r rune, atWordEnd bool) PenaltyType {
	if atWordEnd || unicode.IsSpace(r) {
		return PenaltyNone
	}
	return PenaltyProhibitBreak
}

// wordEndSet returns, for every byte offset in text, whether the rune
// starting there is the last rune of a UAX#29 word segment that is not
// all whitespace.
func wordEndSet(text string) map[int]bool {
	ends := make(map[int]bool)
	breaker := uax29.NewWordBreaker(1)
	breaker.Init(strings.NewReader(text))
	pos := 0
	for breaker.Next() {
		word := breaker.Text()
		if word == "" {
			continue
		}
		if strings.TrimSpace(word) == "" {
			pos += len(word)
			continue // inter-word whitespace: the word end is the rune before it
		}
		lastRuneStart := pos + len(word)
		for i := len(word) - 1; i >= 0; i-- {
			if utf8RuneStart(word[i]) {
				lastRuneStart = pos + i
				break
			}
		}
		ends[lastRuneStart] = true
		pos += len(word)
	}
	return ends
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
