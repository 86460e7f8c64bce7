// Package layerfile reads and writes the JSON interchange format used
// to hand a layer's polygons and polylines to the batch CLI: one file
// per layer, holding the vertex data the monotonic orderer stages
// through pathrec.Base.
package layerfile

import (
	"encoding/json"
	"os"

	"github.com/kennylevinsen/pathorder/geo"
	"github.com/pkg/errors"
)

// Point mirrors geo.Point with JSON field names, since geo.Point itself
// carries no struct tags -- this package is the only place in the
// module that needs to speak JSON.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

func (p Point) toGeo() geo.Point {
	return geo.Point{X: p.X, Y: p.Y}
}

func fromGeo(p geo.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// Path is one polygon or polyline as staged by the caller, identified
// by Name so the ordered output can be matched back to it.
type Path struct {
	Name     string  `json:"name"`
	Closed   bool    `json:"closed"`
	Vertices []Point `json:"vertices"`
}

// Layer is the on-disk shape of one layer file: the set of paths to
// order, plus the parameters the monotonic orderer needs that are
// naturally per-layer (the direction can rotate between layers, e.g.
// for cross-hatched infill).
type Layer struct {
	DirectionRadians float64 `json:"direction_radians"`
	Paths            []Path  `json:"paths"`
}

// Load reads and parses a layer file.
func Load(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "layerfile: reading %s", path)
	}
	var l Layer
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrapf(err, "layerfile: parsing %s", path)
	}
	return &l, nil
}

// Save writes a layer back out, e.g. to persist the ordered result.
// Only what Layer and Path hold is written (name, closed flag and
// vertices per path, in order); no per-path start vertex or traversal
// direction is stored.
func Save(path string, l *Layer) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "layerfile: encoding %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "layerfile: writing %s", path)
	}
	return nil
}

// GeoVertices converts a Path's JSON point list to geo.Point for
// staging into a pathrec.Base or monotonic.Orderer.
func (p Path) GeoVertices() []geo.Point {
	out := make([]geo.Point, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.toGeo()
	}
	return out
}

// FromGeoVertices builds the JSON point list from geo.Point vertices,
// for writing an ordered path back out.
func FromGeoVertices(vertices []geo.Point) []Point {
	out := make([]Point, len(vertices))
	for i, v := range vertices {
		out[i] = fromGeo(v)
	}
	return out
}
