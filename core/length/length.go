/*
Package length implements the five-mode length type used for a box's
ideal, minimum and maximum dimensions: absolute, fractional (grow-style
flexing relative to siblings), grow-to-fill, auto (content driven) and
shrink-to-fit.

This is a deliberately smaller relative of a CSS dimension type: it has no
unit zoo (em/ex/ch/rem/vw/vh/...), no inherit/initial keywords and no
content-min/content-max distinction — the markup language this engine
parses only ever needs the five modes spec'd below. The design (a value
plus a bitmask-style mode flag) follows the bitmask-flag shape of a CSS
dimension type in the style packages of the surrounding ecosystem.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package length

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/core/option"
)

// Mode is the resolution mode of a Length value.
type Mode uint8

const (
	// Auto means the length is derived from content; no stored Value applies.
	Auto Mode = iota
	// Absolute means Value holds a fixed dimen.Dimen.
	Absolute
	// Fractional means Value (as a fraction, 1000 == 1.0) describes a share
	// of the free space distributed among flexible siblings.
	Fractional
	// Grow means the box grows to consume all remaining free space on its axis.
	Grow
	// Shrink means the box shrinks to the smallest size its content allows.
	Shrink
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Absolute:
		return "absolute"
	case Fractional:
		return "fractional"
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	}
	return "unknown"
}

// Length is a box dimension in one of five resolution modes.
type Length struct {
	Mode  Mode
	Value dimen.Dimen // meaningful for Absolute (a Dimen) and Fractional (a fraction*1000)
}

// Zero is the absolute zero length.
var Zero = Length{Mode: Absolute, Value: 0}

// AutoLength is the auto length, used as the zero value's logical analogue
// whenever content-driven sizing is wanted explicitly.
var AutoLength = Length{Mode: Auto}

// NewAbsolute returns a fixed-size length.
func NewAbsolute(d dimen.Dimen) Length {
	return Length{Mode: Absolute, Value: d}
}

// NewFractional returns a length expressing a share of free space, where
// frac is e.g. 0.5 for "half of the remaining space".
func NewFractional(frac float64) Length {
	return Length{Mode: Fractional, Value: dimen.Dimen(frac * 1000)}
}

// NewGrow returns a length that consumes all available free space.
func NewGrow() Length {
	return Length{Mode: Grow}
}

// NewShrink returns a length that shrinks to the smallest size its content
// allows.
func NewShrink() Length {
	return Length{Mode: Shrink}
}

// IsAuto reports whether l is content-driven.
func (l Length) IsAuto() bool { return l.Mode == Auto }

// IsAbsolute reports whether l holds a fixed dimen.Dimen.
func (l Length) IsAbsolute() bool { return l.Mode == Absolute }

// IsFlexible reports whether l participates in free-space distribution
// (Fractional or Grow).
func (l Length) IsFlexible() bool { return l.Mode == Fractional || l.Mode == Grow }

// Dimen returns the absolute value of l. It panics if l is not Absolute;
// callers must resolve other modes via Resolve.
func (l Length) Dimen() dimen.Dimen {
	if l.Mode != Absolute {
		panic(fmt.Sprintf("length: Dimen() called on a %s length", l.Mode))
	}
	return l.Value
}

// Fraction returns l's share of free space (1.0 == 100%) for a Fractional
// length. It panics for any other mode.
func (l Length) Fraction() float64 {
	if l.Mode != Fractional {
		panic(fmt.Sprintf("length: Fraction() called on a %s length", l.Mode))
	}
	return float64(l.Value) / 1000.0
}

// Resolve computes a concrete dimen.Dimen given the enclosing dimension and
// the free space still available for flexible siblings on this axis.
// Auto and Shrink are content-driven and cannot be resolved this way; the
// caller (the sizing wheel) supplies contentSize as the fallback for them.
func (l Length) Resolve(enclosing, freeSpace, contentSize dimen.Dimen) dimen.Dimen {
	result := option.Key(l.Mode).Match(option.Choices{
		Absolute:   func() interface{} { return l.Value },
		Fractional: func() interface{} { return dimen.Dimen(float64(freeSpace) * l.Fraction()) },
		Grow:       func() interface{} { return freeSpace },
		Auto:       func() interface{} { return contentSize },
		Shrink:     func() interface{} { return contentSize },
	})
	return result.(dimen.Dimen)
}

func (l Length) String() string {
	switch l.Mode {
	case Absolute:
		return l.Value.String()
	case Fractional:
		return strconv.FormatFloat(l.Fraction(), 'g', -1, 64) + "fr"
	case Grow:
		return "grow"
	case Shrink:
		return "shrink"
	}
	return "auto"
}

// Parse parses a length literal from the markup language: a dimen literal
// ("12px"), a fraction ("2fr"), or one of the keywords "auto"/"grow"/"shrink".
func Parse(s string) (Length, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "auto":
		return AutoLength, nil
	case "grow":
		return NewGrow(), nil
	case "shrink":
		return NewShrink(), nil
	}
	if strings.HasSuffix(s, "fr") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "fr"), 64)
		if err != nil {
			return Length{}, fmt.Errorf("length: invalid fraction %q: %w", s, err)
		}
		return NewFractional(n), nil
	}
	d, isPercent, err := dimen.ParseDimen(s)
	if err != nil {
		return Length{}, fmt.Errorf("length: invalid literal %q: %w", s, err)
	}
	if isPercent {
		return NewFractional(float64(d) / 100.0), nil
	}
	return NewAbsolute(d), nil
}
