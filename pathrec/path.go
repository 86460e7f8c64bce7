// Package pathrec implements the path record type and the base
// ordering operations shared by every path-ordering strategy: detecting
// which staged inputs are closed loops versus open polylines, and
// picking a closest-start endpoint against a running nozzle position.
package pathrec

import "github.com/kennylevinsen/pathorder/geo"

// Handle is an opaque reference to caller-owned vertex data. The
// orderer never dereferences or mutates it; it is carried through so
// the caller can map an emitted Path back to its source geometry.
type Handle any

// Path is an ordered vertex sequence plus the bookkeeping the orderer
// needs to thread it into an emission order.
//
// Invariants before Optimize: every open path has StartVertex ==
// len(Vertices) (the "unassigned" sentinel); no path is expected to be
// empty, though the orderer tolerates empty and single-vertex paths and
// emits them unchanged.
//
// Invariants after Optimize: every open path with >=1 vertex has
// StartVertex in {0, len(Vertices)-1} or the sentinel (only for
// singleton degenerate paths). Backwards is true iff StartVertex is the
// last vertex.
type Path struct {
	Vertices []geo.Point
	Closed   bool

	// StartVertex is an index into Vertices, or len(Vertices) as the
	// "unassigned" sentinel. See the note in original_source's
	// PathOrderMonotonic.h: a reimplementation should model this as an
	// explicit optional; this field keeps the sentinel encoding because
	// every call site in this module (the monotonic package's
	// canConnectToPolyline check in particular) is already written
	// against it, and an Optional[int] buys nothing but an extra layer
	// of unwrapping at each comparison.
	StartVertex int

	// Backwards is true if traversal should visit Vertices in reverse.
	Backwards bool

	// Handle is the caller's reference to the original vertex data.
	Handle Handle
}

// Unassigned reports whether the path's StartVertex is still the
// sentinel value, i.e. no start point has been chosen yet.
func (p *Path) Unassigned() bool {
	return p.StartVertex == len(p.Vertices)
}

// First returns the path's first vertex.
func (p *Path) First() geo.Point {
	return p.Vertices[0]
}

// Last returns the path's last vertex.
func (p *Path) Last() geo.Point {
	return p.Vertices[len(p.Vertices)-1]
}

// StartPoint returns the vertex at StartVertex, once assigned.
func (p *Path) StartPoint() geo.Point {
	return p.Vertices[p.StartVertex]
}

// ExitPoint returns the vertex opposite StartVertex: where the nozzle
// leaves the path once it has been traversed from its start.
func (p *Path) ExitPoint() geo.Point {
	return p.Vertices[len(p.Vertices)-1-p.StartVertex]
}

// ProjMin returns the smaller of the two endpoint projections onto d.
func (p *Path) ProjMin(d geo.Point) int64 {
	a, b := p.First().Dot(d), p.Last().Dot(d)
	if a < b {
		return a
	}
	return b
}

// ProjMax returns the larger of the two endpoint projections onto d.
func (p *Path) ProjMax(d geo.Point) int64 {
	a, b := p.First().Dot(d), p.Last().Dot(d)
	if a > b {
		return a
	}
	return b
}

// OptimizeClosestStartPoint assigns path's StartVertex/Backwards if
// unset, choosing whichever endpoint is closer to current, ties
// breaking toward the first vertex. It then advances current to the
// path's exit point, regardless of whether StartVertex was already
// set. Panics if path has no vertices: this is a precondition
// violation, not a recoverable error, per the failure semantics every
// package in this module shares.
func OptimizeClosestStartPoint(path *Path, current *geo.Point) {
	if len(path.Vertices) == 0 {
		panic("pathrec: OptimizeClosestStartPoint called on an empty path")
	}

	if path.Unassigned() {
		distStart := current.DistSquared(path.First())
		distEnd := current.DistSquared(path.Last())
		if distStart <= distEnd {
			path.StartVertex = 0
			path.Backwards = false
		} else {
			path.StartVertex = len(path.Vertices) - 1
			path.Backwards = true
		}
	}

	*current = path.ExitPoint()
}
