// Package monotonic implements the Monotonic Path Orderer: given a set
// of closed polygons and open polylines plus a preferred printing
// direction, it produces a permutation of those paths, plus a chosen
// start endpoint and traversal direction for each, such that paths
// lying in the same perpendicular "band" are printed in strictly
// monotonic order along the direction vector.
//
// The package has no I/O and no recoverable failures of its own:
// precondition violations (an empty path reaching
// pathrec.OptimizeClosestStartPoint) are programmer errors and abort
// the process via panic; nothing in this package recovers from them.
package monotonic

import (
	"sort"

	"github.com/kennylevinsen/pathorder/geo"
	"github.com/kennylevinsen/pathorder/grid"
	"github.com/kennylevinsen/pathorder/pathrec"
)

// gridBucketSize is the sparse point grid's bucket side: 2mm in the
// micrometre-scale fixed point this module uses throughout.
const gridBucketSize = 2000

// Orderer stages paths for one (direction, tolerance, start point)
// combination and produces their monotonic emission order. One
// Orderer is used for one layer (or one region of a layer); distinct
// Orderers on distinct goroutines share no state.
type Orderer struct {
	base pathrec.Base

	direction           geo.Point
	maxAdjacentDistance int64
	start               geo.Point

	result []pathrec.Path
}

// New creates an Orderer. direction is the monotonic printing
// direction vector (see geo.Direction), maxAdjacentDistance is the
// tolerance within which two parallel-ish segments are considered
// adjacent in the monotonic order, coincidentPointDistance is the
// tolerance within which two endpoints are considered the same point,
// and start is the nozzle's starting position.
func New(direction geo.Point, maxAdjacentDistance, coincidentPointDistance int64, start geo.Point) *Orderer {
	if coincidentPointDistance > gridBucketSize {
		panic("monotonic: coincidentPointDistance must not exceed the 2mm grid bucket size")
	}
	o := &Orderer{
		direction:           direction,
		maxAdjacentDistance: maxAdjacentDistance,
		start:               start,
	}
	o.base.CoincidentPointDistance = coincidentPointDistance
	return o
}

// AddPolygon stages a closed path.
func (o *Orderer) AddPolygon(vertices []geo.Point, handle pathrec.Handle) {
	o.base.AddPolygon(vertices, handle)
}

// AddPolyline stages an open path.
func (o *Orderer) AddPolyline(vertices []geo.Point, handle pathrec.Handle) {
	o.base.AddPolyline(vertices, handle)
}

// Paths returns the result of the most recent Optimize call, or nil if
// Optimize has not run yet.
func (o *Orderer) Paths() []pathrec.Path {
	return o.result
}

// Optimize computes the emission order: closed paths (and loops
// detected from nearly-closed polylines, see pathrec.Base.Partition)
// first, unordered, then open paths in monotonic order. After Optimize
// returns, Paths reflects the new order with every path's StartVertex
// and Backwards populated.
func (o *Orderer) Optimize() {
	closed, open := o.base.Partition()

	for i := range closed {
		p := &closed[i]
		if len(p.Vertices) > 1 {
			p.StartVertex = pathrec.ClosestStartVertex(p, o.direction)
			p.Backwards = false
		}
	}

	if len(open) == 0 {
		o.result = closed
		return
	}

	sortedOpen := sortByProjMin(open, o.direction)
	g := buildEndpointGrid(sortedOpen)
	sg := &stringGraph{
		direction:               o.direction,
		maxAdjacentDistance:     o.maxAdjacentDistance,
		coincidentPointDistance: o.base.CoincidentPointDistance,
		sorted:                  sortedOpen,
		grid:                    g,
		index:                   indexOf(sortedOpen),
		connections:             make([]int, len(sortedOpen)),
		starting:                make([]bool, len(sortedOpen)),
		connected:               make([]bool, len(sortedOpen)),
	}
	for i := range sg.connections {
		sg.connections[i] = -1
	}
	sg.build()

	ordered := emit(sg, o.start)

	result := make([]pathrec.Path, 0, len(closed)+len(ordered))
	result = append(result, closed...)
	for _, p := range ordered {
		result = append(result, *p)
	}
	o.result = result
}

// sortByProjMin stably sorts paths by the smaller of their two endpoint
// projections onto d, returning pointers into a freshly allocated,
// non-reallocating backing array so later stages can mutate paths
// in place through stable pointers.
func sortByProjMin(paths []pathrec.Path, d geo.Point) []*pathrec.Path {
	backing := make([]pathrec.Path, len(paths))
	copy(backing, paths)

	ptrs := make([]*pathrec.Path, len(backing))
	for i := range backing {
		ptrs[i] = &backing[i]
	}
	sort.SliceStable(ptrs, func(i, j int) bool {
		return ptrs[i].ProjMin(d) < ptrs[j].ProjMin(d)
	})
	return ptrs
}

func buildEndpointGrid(sorted []*pathrec.Path) *grid.Grid[*pathrec.Path] {
	g := grid.New[*pathrec.Path](gridBucketSize)
	for _, p := range sorted {
		if len(p.Vertices) == 0 {
			continue
		}
		g.Insert(p.First(), p)
		g.Insert(p.Last(), p)
	}
	return g
}

func indexOf(sorted []*pathrec.Path) map[*pathrec.Path]int {
	idx := make(map[*pathrec.Path]int, len(sorted))
	for i, p := range sorted {
		idx[p] = i
	}
	return idx
}
