// Package geo implements the fixed-point 2D geometry kernel that every
// other package in this module builds on: integer points, and the small
// set of operations (dot product, squared distance, 90-degree rotation,
// projection) that the path orderer needs. All coordinates are in
// micrometre-scale fixed point, so every comparison here is exact integer
// arithmetic with no platform-dependent rounding.
package geo

import "math"

// Resolution is the scale factor applied to direction vectors so that
// their integer components retain enough precision for dot products to
// discriminate between nearly-parallel directions, without overflowing
// a signed 64-bit accumulator when multiplied against build-volume-scale
// coordinates.
const Resolution = 1000

// Point is an integer 2D point or vector, in micrometre units.
type Point struct {
	X, Y int64
}

// Dot returns the signed dot product of p and v.
func (p Point) Dot(v Point) int64 {
	return p.X*v.X + p.Y*v.Y
}

// VSize2 returns the squared magnitude of p.
func (p Point) VSize2() int64 {
	return p.Dot(p)
}

// Turn90CCW rotates p by 90 degrees counter-clockwise.
func (p Point) Turn90CCW() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// DistSquared returns the squared Euclidean distance between p and o.
func (p Point) DistSquared(o Point) int64 {
	return p.Sub(o).VSize2()
}

// Direction builds the monotonic direction vector for an angle theta
// (radians), at Resolution. The negated X component is intentional: it
// mirrors the convention used by the infill generator this orderer was
// designed alongside, and only affects how theta is interpreted, never
// the correctness of the ordering.
func Direction(theta float64) Point {
	return Point{
		X: int64(math.Round(-math.Cos(theta) * Resolution)),
		Y: int64(math.Round(math.Sin(theta) * Resolution)),
	}
}
