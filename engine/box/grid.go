package box

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/npillmayer-style/quipu/core/dimen"
)

// Grid is a multi-level hashed spatial index over box outer rectangles,
// supporting point, rectangle and directional-anchor queries. Grounded on
// the fetch pack's predecessor structure (stacker_quadtree.{h,cpp}), which
// despite its filename implements exactly this hashed-level grid rather
// than a literal quadtree.
type Grid struct {
	cells      map[uint32]*gridCell
	queryStamp uint64
}

type gridCell struct {
	code       uint32
	boxes      *doublylinkedlist.List
	queryStamp uint64
}

// levelPitches are the four fixed power-of-two cell pitches, from the
// finest to the coarsest level.
var levelPitches = [4]dimen.Dimen{
	64 * dimen.BP,
	256 * dimen.BP,
	2048 * dimen.BP,
	32768 * dimen.BP,
}

// NewGrid returns an empty spatial grid.
func NewGrid() *Grid {
	return &Grid{cells: make(map[uint32]*gridCell)}
}

func levelFor(diameter dimen.Dimen) int {
	for lvl, pitch := range levelPitches {
		if diameter <= pitch {
			return lvl
		}
	}
	return len(levelPitches) - 1
}

// cellCode packs (level, i, j) into a 32-bit code per spec.md §4.1:
// (level << 30) | ((j & 0x7fff) << 15) | (i & 0x7fff).
func cellCode(level int, i, j int32) uint32 {
	return uint32(level)<<30 | (uint32(j)&0x7fff)<<15 | (uint32(i) & 0x7fff)
}

func cellIndices(level int, center dimen.Point) (i, j int32) {
	pitch := levelPitches[level]
	return int32(center.X / pitch), int32(center.Y / pitch)
}

// Insert files box into the grid cell matching its current OuterRect.
func (g *Grid) Insert(b *Box) {
	r := b.OuterRect()
	level := levelFor(r.Diameter())
	i, j := cellIndices(level, dimen.Point{X: r.CenterX(), Y: r.CenterY()})
	code := cellCode(level, i, j)
	cell, ok := g.cells[code]
	if !ok {
		cell = &gridCell{code: code, boxes: doublylinkedlist.New()}
		g.cells[code] = cell
	}
	cell.boxes.Add(b)
	b.GridCell = code
	b.cellValid = true
}

// Remove unfiles box from its current grid cell.
func (g *Grid) Remove(b *Box) {
	if !b.cellValid {
		return
	}
	cell, ok := g.cells[b.GridCell]
	if ok {
		idx, found := cell.boxes.IndexOf(b)
		if found >= 0 {
			cell.boxes.Remove(idx)
		}
		if cell.boxes.Empty() {
			delete(g.cells, cell.code)
		}
	}
	b.cellValid = false
}

// Rekey removes and reinserts box, used whenever a size change
// reclassifies which cell it belongs in.
func (g *Grid) Rekey(b *Box) {
	g.Remove(b)
	g.Insert(b)
}

// QueryRect returns every box overlapping [x0,x1]x[y0,y1]. If clip is
// true, each candidate's own outer rectangle is narrow-phase tested
// against the query rectangle; if false, every box in a hit cell is
// returned unfiltered. maxCount bounds the result length; the full match
// count is returned as the second value regardless of truncation.
func (g *Grid) QueryRect(query dimen.Rect, maxCount int, clip bool) ([]*Box, int) {
	g.queryStamp++
	stamp := g.queryStamp
	var result []*Box
	total := 0
	for level, pitch := range levelPitches {
		half := pitch / 2
		i0, j0 := cellIndices(level, dimen.Point{X: query.TopL.X - half, Y: query.TopL.Y - half})
		i1, j1 := cellIndices(level, dimen.Point{X: query.TopL.X + query.W + half, Y: query.TopL.Y + query.H + half})
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				code := cellCode(level, i, j)
				cell, ok := g.cells[code]
				if !ok || cell.queryStamp == stamp {
					continue
				}
				cell.queryStamp = stamp
				cell.boxes.Each(func(_ int, v interface{}) {
					bx := v.(*Box)
					if clip && !bx.OuterRect().Overlaps(query) {
						return
					}
					total++
					if maxCount <= 0 || len(result) < maxCount {
						result = append(result, bx)
					}
				})
			}
		}
	}
	return result, total
}

// QueryPoint is a rectangle query with zero area.
func (g *Grid) QueryPoint(p dimen.Point, maxCount int) ([]*Box, int) {
	return g.QueryRect(dimen.Rect{TopL: p}, maxCount, true)
}

// AnchorQuery walks slice-by-slice from y in the given direction (positive
// = downward) through the horizontal band [x0,x1], collecting selection
// anchor boxes in each slice and returning the first winner under the
// ordering of spec.md §4.1(a)-(d). isAnchor filters candidate boxes to
// those eligible to serve as selection anchors.
func (g *Grid) AnchorQuery(qx, x0, x1, y dimen.Dimen, direction int, step dimen.Dimen, isAnchor func(*Box) bool) *Box {
	if step <= 0 {
		step = 16 * dimen.BP
	}
	dir := dimen.Dimen(1)
	if direction < 0 {
		dir = -1
	}
	const maxSlices = 4096
	for slice := 0; slice < maxSlices; slice++ {
		sliceY := y + dir*step*dimen.Dimen(slice)
		boxes, _ := g.QueryRect(dimen.Rect{TopL: dimen.Point{X: x0, Y: sliceY}, W: x1 - x0, H: step}, 0, false)
		var candidates []*Box
		for _, b := range boxes {
			if isAnchor == nil || isAnchor(b) {
				candidates = append(candidates, b)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		return pickAnchor(candidates, qx, sliceY)
	}
	return nil
}

// pickAnchor resolves ties among candidates in one slice via the ordering
// of spec.md §4.1(a)-(d).
func pickAnchor(candidates []*Box, qx, qy dimen.Dimen) *Box {
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if isDescendantContaining(cand, best, qx, qy) {
			best = cand
			continue
		}
		if isDescendantContaining(best, cand, qx, qy) {
			continue
		}
		if nearestParent, ok := commonParent(best, cand); ok {
			_ = nearestParent
			if majorAxisCloser(cand, best, qx, qy) {
				best = cand
			}
			continue
		}
		if vBandDiffers(best, cand) {
			if vDistance(cand, qy) < vDistance(best, qy) {
				best = cand
			}
			continue
		}
		if hDistance(cand, qx) < hDistance(best, qx) {
			best = cand
		}
	}
	return best
}

func isDescendantContaining(descendant, ancestor *Box, qx, qy dimen.Dimen) bool {
	if descendant == ancestor {
		return false
	}
	for p := descendant.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return descendant.OuterRect().Contains(dimen.Point{X: qx, Y: qy})
		}
	}
	return false
}

func commonParent(a, b *Box) (*Box, bool) {
	if a.Parent() != nil && a.Parent() == b.Parent() {
		return a.Parent(), true
	}
	return nil, false
}

func majorAxisCloser(a, b *Box, qx, qy dimen.Dimen) bool {
	parent := a.Parent()
	if parent != nil && parent.MainAxis == Vertical {
		return vDistance(a, qy) < vDistance(b, qy)
	}
	return hDistance(a, qx) < hDistance(b, qx)
}

func vBandDiffers(a, b *Box) bool {
	ra, rb := a.OuterRect(), b.OuterRect()
	return ra.TopL.Y.Abs()-rb.TopL.Y.Abs() != 0 && (ra.TopL.Y-rb.TopL.Y).Abs() >= dimen.BP
}

func vDistance(b *Box, qy dimen.Dimen) dimen.Dimen {
	r := b.OuterRect()
	return (r.CenterY() - qy).Abs()
}

func hDistance(b *Box, qx dimen.Dimen) dimen.Dimen {
	r := b.OuterRect()
	return (r.CenterX() - qx).Abs()
}
