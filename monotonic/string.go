package monotonic

import (
	"github.com/kennylevinsen/pathorder/geo"
	"github.com/kennylevinsen/pathorder/grid"
	"github.com/kennylevinsen/pathorder/internal/logx"
	"github.com/kennylevinsen/pathorder/pathrec"
)

// findPolylineString walks both endpoints of p through the endpoint
// grid, greedily extending a chain of paths whose successive endpoints
// coincide within coincidentPointDistance, per spec section 4.4.2. Each
// extended member gets its StartVertex set to its far endpoint relative
// to the joining endpoint, so traversal continues outward along the
// string. The returned slice is in print order; if it has length 1 the
// caller's StartVertex sentinel is restored (it wasn't part of a
// string after all).
func findPolylineString(p *pathrec.Path, g *grid.Grid[*pathrec.Path], coincidentPointDistance int64, direction geo.Point) []*pathrec.Path {
	if len(p.Vertices) == 0 {
		return nil
	}

	result := []*pathrec.Path{p}
	p.StartVertex = 0

	firstEndpoint := p.First()
	lastEndpoint := p.Last()

	findClose := func(endpoint geo.Point) (grid.Entry[*pathrec.Path], bool) {
		for _, e := range g.GetNearby(endpoint, coincidentPointDistance) {
			if canConnectToPolyline(endpoint, e, coincidentPointDistance) {
				return e, true
			}
		}
		return grid.Entry[*pathrec.Path]{}, false
	}

	for {
		close, ok := findClose(firstEndpoint)
		if !ok {
			break
		}
		first := close.Tag
		result = append([]*pathrec.Path{first}, result...)
		farthest := farthestEndpointIndex(first, close.Point)
		first.StartVertex = farthest
		first.Backwards = first.StartVertex == len(first.Vertices)-1
		firstEndpoint = first.Vertices[farthest]
	}

	for {
		close, ok := findClose(lastEndpoint)
		if !ok {
			break
		}
		last := close.Tag
		result = append(result, last)
		farthest := farthestEndpointIndex(last, close.Point)
		if farthest == 0 {
			last.StartVertex = len(last.Vertices) - 1
		} else {
			last.StartVertex = 0
		}
		last.Backwards = last.StartVertex == len(last.Vertices)-1
		lastEndpoint = last.Vertices[farthest]
	}

	firstProjection := firstEndpoint.Dot(direction)
	lastProjection := lastEndpoint.Dot(direction)
	if lastProjection < firstProjection {
		reversePaths(result)
		for _, m := range result {
			if m.StartVertex == 0 {
				m.StartVertex = len(m.Vertices) - 1
			} else {
				m.StartVertex = 0
			}
			m.Backwards = !m.Backwards
		}
	}

	if len(result) == 1 {
		result[0].StartVertex = len(result[0].Vertices) // restore the "unassigned" sentinel
	} else {
		logx.Logger().Debug("monotonic: polyline string formed", "members", len(result),
			"head", result[0].Handle, "tail", result[len(result)-1].Handle)
	}

	return result
}

// canConnectToPolyline reports whether a grid hit is eligible to extend
// a polyline string: it must not already be claimed by another string
// (StartVertex still at the unassigned sentinel), and its stored
// endpoint must genuinely be within the coincidence tolerance -- the
// grid's GetNearby may return bucket-neighbourhood false positives.
func canConnectToPolyline(joinEndpoint geo.Point, found grid.Entry[*pathrec.Path], coincidentPointDistance int64) bool {
	return found.Tag.Unassigned() &&
		found.Point.DistSquared(joinEndpoint) < coincidentPointDistance*coincidentPointDistance
}

// farthestEndpointIndex returns the index of p's endpoint farthest from
// point: the side the chain should continue extending toward.
func farthestEndpointIndex(p *pathrec.Path, point geo.Point) int {
	frontDist := p.First().DistSquared(point)
	backDist := p.Last().DistSquared(point)
	if frontDist < backDist {
		return len(p.Vertices) - 1
	}
	return 0
}

func reversePaths(s []*pathrec.Path) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
