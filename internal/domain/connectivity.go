package domain

// Reason explains why a connectivity check failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotAdjacent
	ReasonMissingShard
	ReasonColorMismatch
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonNotAdjacent:
		return "not adjacent"
	case ReasonMissingShard:
		return "missing shard data"
	case ReasonColorMismatch:
		return "color mismatch"
	default:
		return "unknown"
	}
}

// Connection is the verdict of a connectivity check between two positions.
type Connection struct {
	OK     bool
	Reason Reason
	Edges  EdgePair // physical edges, valid when adjacent
	Colors [2]int   // resolved colors, valid when both shards exist
}

// CheckConnection resolves adjacency and rotation-aware edge colors between
// two grid positions. The move passes only when both displayed colors match.
func CheckConnection(g *Grid, from, to Position) Connection {
	rooms := 0
	if g != nil {
		rooms = g.Rooms
	}
	edges, ok := Adjacency(from, to, rooms)
	if !ok {
		return Connection{Reason: ReasonNotAdjacent}
	}

	a, b := g.ShardAt(from), g.ShardAt(to)
	if a == nil || b == nil {
		return Connection{Reason: ReasonMissingShard, Edges: edges}
	}

	c := Connection{
		Edges:  edges,
		Colors: [2]int{a.ColorAt(edges[0]), b.ColorAt(edges[1])},
	}
	if c.Colors[0] != c.Colors[1] {
		c.Reason = ReasonColorMismatch
		return c
	}
	c.OK = true
	return c
}
