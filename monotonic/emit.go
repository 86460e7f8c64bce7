package monotonic

import (
	"sort"

	"github.com/kennylevinsen/pathorder/geo"
	"github.com/kennylevinsen/pathorder/internal/logx"
	"github.com/kennylevinsen/pathorder/pathrec"
)

// emit walks sg's relation to produce the final print order, per spec
// section 4.5: starting lines are visited in ascending (proj_min,
// proj_max) order, and each one is followed through connections for as
// long as the next path isn't itself a starting line (a hub, where the
// band this chain belongs to ends) and hasn't already been visited (a
// defensive cycle guard -- the relation is built as an at-most-one-out
// function so a cycle should not be reachable, but nothing upstream
// proves it).
func emit(sg *stringGraph, start geo.Point) []*pathrec.Path {
	var starts []int
	for i, s := range sg.starting {
		if s {
			starts = append(starts, i)
		}
	}
	sort.SliceStable(starts, func(a, b int) bool {
		pa, pb := sg.sorted[starts[a]], sg.sorted[starts[b]]
		ma, mb := pa.ProjMin(sg.direction), pb.ProjMin(sg.direction)
		if ma != mb {
			return ma < mb
		}
		return pa.ProjMax(sg.direction) < pb.ProjMax(sg.direction)
	})

	current := start
	result := make([]*pathrec.Path, 0, len(sg.sorted))

	// visited is reset per starting line, exactly matching spec's
	// emission pseudocode (`visited ← {}` inside the outer loop): a
	// non-starting node has at most one predecessor (any node with more
	// than one gets promoted into starting during construction), so a
	// chain can only ever revisit a node by looping back on itself, and
	// the per-chain guard is enough to catch that.
	for _, s := range starts {
		visited := make(map[int]bool)
		i := s
		for {
			if visited[i] {
				logx.Logger().Debug("monotonic: cycle guard triggered, stopping chain early", "index", i)
				break
			}
			p := sg.sorted[i]
			pathrec.OptimizeClosestStartPoint(p, &current)
			result = append(result, p)
			visited[i] = true

			next := sg.connections[i]
			if next == -1 || sg.starting[next] {
				break
			}
			i = next
		}
	}

	return result
}
