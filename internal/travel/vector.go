// Package travel estimates total nozzle travel for a batch run, used
// only for the --dump summary printed at the end of ordering a layer.
// It is adapted from the teacher's generic 3D vector type, dropping Z
// to the layer plane since paths are staged in 2D fixed-point.
package travel

import (
	"math"

	"github.com/kennylevinsen/pathorder/geo"
)

// Vector is a travel displacement in the same micrometre-scale fixed
// point as geo.Point, widened to float64 for the norm.
type Vector struct {
	X, Y float64
}

func fromPoint(p geo.Point) Vector {
	return Vector{X: float64(p.X), Y: float64(p.Y)}
}

func (v Vector) Diff(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the travel distance, in micrometres, between two
// fixed-point points.
func Distance(a, b geo.Point) float64 {
	return fromPoint(b).Diff(fromPoint(a)).Norm()
}
