package monotonic

import (
	"github.com/kennylevinsen/pathorder/geo"
	"github.com/kennylevinsen/pathorder/pathrec"
)

// overlappingLines enumerates every path after i (in sorted-by-ProjMin
// order) that must be printed after sorted[i] under the monotonic
// adjacency rule of spec section 4.4.3: sorted[i]'s monotonic span,
// expanded by maxAdjacentDistance*Resolution on both sides, must still
// reach the candidate's unexpanded monotonic span, and sorted[i]'s
// perpendicular span, expanded the same way, must overlap the
// candidate's unexpanded perpendicular span.
func overlappingLines(i int, sorted []*pathrec.Path, direction geo.Point, maxAdjacentDistance int64) []*pathrec.Path {
	p := sorted[i]
	perpendicular := direction.Turn90CCW()
	padding := maxAdjacentDistance * geo.Resolution

	myStartMono := p.First().Dot(direction)
	myEndMono := p.Last().Dot(direction)
	myFarthestMono := max64(myStartMono, myEndMono) + padding
	myClosestMono := min64(myStartMono, myEndMono) - padding

	myStartPerp := p.First().Dot(perpendicular)
	myEndPerp := p.Last().Dot(perpendicular)
	myFarthestPerp := max64(myStartPerp, myEndPerp) + padding
	myClosestPerp := min64(myStartPerp, myEndPerp) - padding

	var overlapping []*pathrec.Path
	for j := i + 1; j < len(sorted); j++ {
		q := sorted[j]

		theirStartMono := q.First().Dot(direction)
		theirEndMono := q.Last().Dot(direction)
		theirFarthestMono := max64(theirStartMono, theirEndMono)
		theirClosestMono := min64(theirStartMono, theirEndMono)

		if theirClosestMono > myFarthestMono || myClosestMono > theirFarthestMono {
			break // sort order guarantees no later candidate can qualify either
		}

		theirStartPerp := q.First().Dot(perpendicular)
		theirEndPerp := q.Last().Dot(perpendicular)
		theirFarthestPerp := max64(theirStartPerp, theirEndPerp)
		theirClosestPerp := min64(theirStartPerp, theirEndPerp)

		if (myClosestPerp >= theirClosestPerp && myClosestPerp <= theirFarthestPerp) ||
			(myFarthestPerp >= theirClosestPerp && myFarthestPerp <= theirFarthestPerp) ||
			(theirClosestPerp >= myClosestPerp && theirFarthestPerp <= myFarthestPerp) {
			overlapping = append(overlapping, q)
		}
	}
	return overlapping
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
