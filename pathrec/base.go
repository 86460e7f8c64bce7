package pathrec

import "github.com/kennylevinsen/pathorder/geo"

// Base holds the staged paths and tolerances shared by every ordering
// strategy built on top of pathrec: which inputs are closed loops
// versus open polylines, and the coincidence tolerance used both for
// loop detection here and for polyline-string detection in the
// monotonic orderer.
type Base struct {
	// CoincidentPointDistance: two endpoints are "the same" if their
	// Euclidean distance is below this.
	CoincidentPointDistance int64

	paths []Path
}

// AddPolygon stages a closed path (vertices ... implicit edge back to
// the first vertex).
func (b *Base) AddPolygon(vertices []geo.Point, handle Handle) {
	b.paths = append(b.paths, Path{
		Vertices:    vertices,
		Closed:      true,
		StartVertex: len(vertices),
		Handle:      handle,
	})
}

// AddPolyline stages an open path. Its StartVertex starts at the
// unassigned sentinel; Optimize (in the monotonic package) fills it in.
func (b *Base) AddPolyline(vertices []geo.Point, handle Handle) {
	b.paths = append(b.paths, Path{
		Vertices:    vertices,
		Closed:      false,
		StartVertex: len(vertices),
		Handle:      handle,
	})
}

// Paths returns the staged paths in insertion order.
func (b *Base) Paths() []Path {
	return b.paths
}

// SetPaths replaces the staged paths, e.g. with a reordered slice.
func (b *Base) SetPaths(paths []Path) {
	b.paths = paths
}

// detectLoops promotes any open polyline with at least 3 vertices whose
// first and last vertex are within CoincidentPointDistance of each
// other to a closed path. This mirrors CuraEngine's detectLoops() step
// (original_source/include/PathOrderMonotonic.h calls
// this->detectLoops() before splitting paths into the closed-path
// prefix and the polylines to order): such a path behaves like a
// polygon for ordering purposes even though the caller staged it as a
// polyline. Vertex data is never mutated, only the Closed flag.
func (b *Base) detectLoops() {
	threshold := b.CoincidentPointDistance * b.CoincidentPointDistance
	for i := range b.paths {
		p := &b.paths[i]
		if p.Closed || len(p.Vertices) < 3 {
			continue
		}
		if p.First().DistSquared(p.Last()) < threshold {
			p.Closed = true
		}
	}
}

// Partition runs loop detection and splits the staged paths into the
// closed-path prefix and the remaining open polylines, in their
// original staged order within each group.
func (b *Base) Partition() (closed []Path, open []Path) {
	b.detectLoops()
	for _, p := range b.paths {
		if p.Closed || len(p.Vertices) <= 1 {
			closed = append(closed, p)
		} else {
			open = append(open, p)
		}
	}
	return closed, open
}

// ClosestStartVertex chooses, for a closed path, the vertex with the
// smallest projection onto d -- the base-class Z-seam-free rule the
// monotonic orderer uses for every closed path in its prefix (spec
// section on Emission): nearest vertex to the direction vector's
// "earlier side".
func ClosestStartVertex(p *Path, d geo.Point) int {
	best := 0
	bestProj := p.Vertices[0].Dot(d)
	for i := 1; i < len(p.Vertices); i++ {
		proj := p.Vertices[i].Dot(d)
		if proj < bestProj {
			bestProj = proj
			best = i
		}
	}
	return best
}
