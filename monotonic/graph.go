package monotonic

import (
	"github.com/kennylevinsen/pathorder/geo"
	"github.com/kennylevinsen/pathorder/grid"
	"github.com/kennylevinsen/pathorder/internal/logx"
	"github.com/kennylevinsen/pathorder/pathrec"
)

// stringGraph holds the relation built in spec section 4.4.4: a
// many-in, at-most-one-out partial function over paths, represented as
// dense arrays indexed by each path's position in sorted (per the
// design notes' recommendation to prefer a dense array over a hash map
// once handles are assigned during the projection sort -- see also
// other_examples/azybler-map_router__graph.go's CSR-style dense
// adjacency for the same idea applied to a routing graph).
type stringGraph struct {
	direction               geo.Point
	maxAdjacentDistance     int64
	coincidentPointDistance int64

	sorted []*pathrec.Path
	grid   *grid.Grid[*pathrec.Path]
	index  map[*pathrec.Path]int

	// connections[i] is the index of sorted[i]'s immediate successor,
	// or -1 if none has been assigned.
	connections []int
	// starting[i]: sorted[i] may begin a monotonic emission run.
	starting []bool
	// connected[i]: sorted[i] is reachable from some starting line via
	// connections.
	connected []bool
}

// build constructs the relation graph, following spec section 4.4.4
// exactly: for each path in sorted order, skipping any that already
// appears as a key of connections, find its polyline string; a string
// longer than one member gets chained up with connections, with hubs
// re-seeded into starting whenever a string member overlaps a line
// outside the string. A lone path instead looks at its own overlapping
// lines directly: exactly one makes it a link in a chain, zero or many
// makes every overlap (or the path itself) a starting line.
func (sg *stringGraph) build() {
	for i, p := range sg.sorted {
		if sg.connections[i] != -1 {
			continue
		}

		str := findPolylineString(p, sg.grid, sg.coincidentPointDistance, sg.direction)

		if len(str) > 1 {
			sg.starting[sg.index[str[0]]] = true
			for k := 0; k < len(str)-1; k++ {
				a := sg.index[str[k]]
				b := sg.index[str[k+1]]
				sg.connections[a] = b
				sg.connected[b] = true

				for _, overlap := range overlappingLines(a, sg.sorted, sg.direction, sg.maxAdjacentDistance) {
					if !memberOf(str, overlap) {
						sg.starting[sg.index[overlap]] = true
						sg.starting[b] = true
						logx.Logger().Debug("monotonic: hub re-seeded at string junction", "string_len", len(str))
					}
				}
			}
			continue
		}

		if !sg.connected[i] {
			sg.starting[i] = true
		}

		overlaps := overlappingLines(i, sg.sorted, sg.direction, sg.maxAdjacentDistance)
		switch len(overlaps) {
		case 1:
			oi := sg.index[overlaps[0]]
			sg.connections[i] = oi
			if sg.connected[oi] {
				sg.starting[oi] = true
			} else {
				sg.connected[oi] = true
			}
		default:
			for _, o := range overlaps {
				sg.starting[sg.index[o]] = true
			}
		}
	}
}

func memberOf(str []*pathrec.Path, p *pathrec.Path) bool {
	for _, m := range str {
		if m == p {
			return true
		}
	}
	return false
}
