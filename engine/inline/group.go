package inline

import (
	"github.com/npillmayer-style/quipu/core/dimen"
	"github.com/npillmayer-style/quipu/engine/khipu"
	"github.com/npillmayer-style/quipu/engine/khipu/linebreak"
)

// group is a maximal run of consecutive paragraph elements within a
// line's range that share an owning node and contain no inline object
// (spec.md §4.5). An inline-object element is always its own group.
type group struct {
	from, to int
	owner    interface{}
	object   bool
}

// placementGroups splits run[from:to] into placement groups.
func placementGroups(run khipu.Run, from, to int) []group {
	var groups []group
	i := from
	for i < to {
		e := run[i]
		if e.IsInlineObject() {
			groups = append(groups, group{from: i, to: i + 1, owner: e.Owner, object: true})
			i++
			continue
		}
		j := i + 1
		for j < to && !run[j].IsInlineObject() && run[j].Owner == e.Owner {
			j++
		}
		groups = append(groups, group{from: i, to: j, owner: e.Owner})
		i = j
	}
	return groups
}

// groupMetrics computes a group's ideal content width (element advances
// plus glue adjusted by the line's adjustment ratio) and its max element
// height.
func groupMetrics(run khipu.Run, g group, adjustRatio float64, env Env) (width, height dimen.Dimen) {
	for i := g.from; i < g.to; i++ {
		e := run[i]
		width += e.Advance
		if env.Height != nil {
			if h := env.Height(e); h > height {
				height = h
			}
		}
		if e.IsWordEnd() && i+1 < g.to {
			sw := dimen.Dimen(0)
			if env.Space != nil {
				sw = env.Space(e.Owner)
			}
			width += adjustedGlue(sw, adjustRatio)
		}
	}
	return width, height
}

// adjustedGlue scales a space's natural width by the line's adjustment
// ratio, stretching towards Max for a positive ratio and shrinking
// towards Min for a negative one, matching the justification pass that
// produced ratio (spec.md §4.4 finalization).
func adjustedGlue(spaceWidth dimen.Dimen, ratio float64) dimen.Dimen {
	wss := linebreak.SpaceGlue(spaceWidth)
	if ratio >= 0 {
		return wss.W + dimen.Dimen(ratio*float64(wss.Max-wss.W))
	}
	return wss.W + dimen.Dimen(ratio*float64(wss.W-wss.Min))
}
