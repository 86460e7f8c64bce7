// Package grid implements the sparse point grid: a uniform-bucket
// spatial hash from 2D integer points to tagged values, used by the
// monotonic orderer to find which polyline endpoints lie near each
// other without an all-pairs scan.
package grid

import "github.com/kennylevinsen/pathorder/geo"

// Entry pairs a stored point with the tag it was inserted under.
type Entry[T any] struct {
	Point geo.Point
	Tag   T
}

type bucketCoord struct {
	x, y int64
}

// Grid is a uniform-bucket spatial hash. The zero value is not usable;
// construct with New.
type Grid[T any] struct {
	bucketSize int64
	buckets    map[bucketCoord][]Entry[T]
}

// New creates a Grid whose buckets are bucketSize on a side. bucketSize
// must be positive; it bounds the maximum radius GetNearby can search
// (radius <= bucketSize), since only the 3x3 neighbourhood of buckets
// around a query point is scanned.
func New[T any](bucketSize int64) *Grid[T] {
	if bucketSize <= 0 {
		panic("grid: bucketSize must be positive")
	}
	return &Grid[T]{
		bucketSize: bucketSize,
		buckets:    make(map[bucketCoord][]Entry[T]),
	}
}

func (g *Grid[T]) coordOf(p geo.Point) bucketCoord {
	return bucketCoord{x: floorDiv(p.X, g.bucketSize), y: floorDiv(p.Y, g.bucketSize)}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Insert adds point tagged with tag to the grid. O(1) amortized.
func (g *Grid[T]) Insert(point geo.Point, tag T) {
	c := g.coordOf(point)
	g.buckets[c] = append(g.buckets[c], Entry[T]{Point: point, Tag: tag})
}

// GetNearby returns every entry whose stored point lies within radius of
// query, by scanning query's bucket and its eight neighbours. radius
// must not exceed the grid's bucket size, or results may miss entries
// outside the scanned neighbourhood. The returned set may contain a
// bounded number of false positives beyond radius (points in a
// neighbouring bucket but farther than radius away); callers that need
// an exact radius must filter by geo.Point.DistSquared themselves.
func (g *Grid[T]) GetNearby(query geo.Point, radius int64) []Entry[T] {
	if radius > g.bucketSize {
		panic("grid: radius exceeds bucket size")
	}
	c := g.coordOf(query)
	var result []Entry[T]
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			neighbour := bucketCoord{x: c.x + dx, y: c.y + dy}
			result = append(result, g.buckets[neighbour]...)
		}
	}
	return result
}
