/*
Package dimen implements dimensions and units.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Online dimension conversion for print:
// http://www.unitconversion.org/unit_converter/typography-ex.html

// Dimen is a 'design unit' type, a fixed-point quantity scaled by 1<<16.
// Every box edge, glue width and text advance in the layout engine is
// expressed as a Dimen.
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Some very stretchable dimensions
const Fil Dimen = Infinity - 3
const Fill Dimen = Infinity - 2
const Filll Dimen = Infinity - 1

// Some common paper sizes
var DINA4 = Point{210 * MM, 297 * MM}
var DINA5 = Point{148 * MM, 210 * MM}
var USLetter = Point{216 * MM, 279 * MM}
var USLegal = Point{216 * MM, 357 * MM}

// Stringer implementation.
func (d Dimen) String() string {
	if d >= Fil {
		return "fil"
	}
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Abs returns the absolute value of a dimension.
func (d Dimen) Abs() Dimen {
	if d < 0 {
		return -d
	}
	return d
}

// Ceil rounds a dimension up to the next whole pixel.
func (d Dimen) Ceil() Dimen {
	if d%PX == 0 {
		return d
	}
	if d < 0 {
		return (d / PX) * PX
	}
	return (d/PX + 1) * PX
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is a rectangle (on a page), given as a top-left corner and a size.
// Using a size rather than a second corner point makes grid-level selection
// (Diameter) and resizing cheap. W and H are signed; a Rect built from
// swapped corners has a negative size.
type Rect struct {
	TopL Point
	W, H Dimen
}

// RectFromCorners builds a Rect from its top-left and bottom-right corners.
func RectFromCorners(topL, botR Point) Rect {
	return Rect{TopL: topL, W: botR.X - topL.X, H: botR.Y - topL.Y}
}

// Width returns the width of a rectangle.
func (r Rect) Width() Dimen {
	return r.W
}

// Height returns the height of a rectangle.
func (r Rect) Height() Dimen {
	return r.H
}

// BotR returns the bottom-right corner of a rectangle.
func (r Rect) BotR() Point {
	return Point{r.TopL.X + r.W, r.TopL.Y + r.H}
}

// CenterX returns the horizontal center of a rectangle.
func (r Rect) CenterX() Dimen {
	return r.TopL.X + r.W/2
}

// CenterY returns the vertical center of a rectangle.
func (r Rect) CenterY() Dimen {
	return r.TopL.Y + r.H/2
}

// Diameter returns the longest outer dimension of a rectangle; the spatial
// grid uses it to decide which level a box belongs to.
func (r Rect) Diameter() Dimen {
	return Max(r.W, r.H)
}

// Shifted returns a copy of r translated by vector.
func (r Rect) Shifted(vector Point) Rect {
	r.TopL.X += vector.X
	r.TopL.Y += vector.Y
	return r
}

// Overlaps reports whether two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	if r.TopL.X >= o.TopL.X+o.W || o.TopL.X >= r.TopL.X+r.W {
		return false
	}
	if r.TopL.Y >= o.TopL.Y+o.H || o.TopL.Y >= r.TopL.Y+r.H {
		return false
	}
	return true
}

// Contains reports whether point p lies within rectangle r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.TopL.X && p.X < r.TopL.X+r.W && p.Y >= r.TopL.Y && p.Y < r.TopL.Y+r.H
}

// Intersect returns the overlapping area of two rectangles; ok is false if
// they don't overlap.
func (r Rect) Intersect(o Rect) (result Rect, ok bool) {
	x0 := Max(r.TopL.X, o.TopL.X)
	y0 := Max(r.TopL.Y, o.TopL.Y)
	x1 := Min(r.TopL.X+r.W, o.TopL.X+o.W)
	y1 := Min(r.TopL.Y+r.H, o.TopL.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{TopL: Point{x0, y0}, W: x1 - x0, H: y1 - y0}, true
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|[cminpxtc]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true.
//
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := SP
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "pt", "PT":
			scale = PT
		case "mm", "MM":
			scale = MM
		case "bp", "px", "BP", "PX":
			scale = BP
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "sp", "SP", "":
			scale = SP
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(n) * scale, ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to lie within [lo, hi]. A non-positive hi means "no
// upper bound".
func Clamp(d, lo, hi Dimen) Dimen {
	if d < lo {
		d = lo
	}
	if hi > 0 && d > hi {
		d = hi
	}
	return d
}
