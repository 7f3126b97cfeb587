package domain

// Direction is the room relation a topology link applies to.
type Direction int

const (
	// SameRoom links two slots of one room.
	SameRoom Direction = iota
	// Clockwise links a slot to a slot in room (r+1) mod rooms.
	Clockwise
	// CounterClockwise links a slot to a slot in room (r-1) mod rooms.
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case SameRoom:
		return "same"
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return "unknown"
	}
}

// EdgePair holds the physical edge index contributed by each side of a link,
// from-side first.
type EdgePair [2]int

// Link is one directed entry of the adjacency table.
type Link struct {
	Dir      Direction
	FromSlot int
	ToSlot   int
	Edges    EdgePair
}

// Topology is the static adjacency table of the ring. Lookup walks it in
// order, so on a two-room ring clockwise entries shadow counter-clockwise ones.
//
// S1-S2, S1-S3 and S2-S3 inside a room have no entry and are not adjacent.
var Topology = []Link{
	{Dir: SameRoom, FromSlot: 1, ToSlot: 0, Edges: EdgePair{1, 0}},
	{Dir: SameRoom, FromSlot: 0, ToSlot: 1, Edges: EdgePair{0, 1}},
	{Dir: SameRoom, FromSlot: 0, ToSlot: 2, Edges: EdgePair{2, 2}},
	{Dir: SameRoom, FromSlot: 2, ToSlot: 0, Edges: EdgePair{2, 2}},
	{Dir: SameRoom, FromSlot: 0, ToSlot: 3, Edges: EdgePair{1, 2}},
	{Dir: SameRoom, FromSlot: 3, ToSlot: 0, Edges: EdgePair{2, 1}},

	{Dir: Clockwise, FromSlot: 1, ToSlot: 1, Edges: EdgePair{2, 0}},
	{Dir: Clockwise, FromSlot: 3, ToSlot: 2, Edges: EdgePair{0, 0}},

	{Dir: CounterClockwise, FromSlot: 1, ToSlot: 1, Edges: EdgePair{0, 2}},
	{Dir: CounterClockwise, FromSlot: 2, ToSlot: 3, Edges: EdgePair{0, 0}},
}

// Adjacency looks up the edge pair joining from and to on a ring of the given
// room count. ok is false when the positions are not adjacent.
func Adjacency(from, to Position, rooms int) (EdgePair, bool) {
	if rooms <= 0 {
		return EdgePair{}, false
	}
	next := (from.Room + 1) % rooms
	prev := (from.Room - 1 + rooms) % rooms

	for _, l := range Topology {
		if l.FromSlot != from.Slot || l.ToSlot != to.Slot {
			continue
		}
		switch l.Dir {
		case SameRoom:
			if to.Room == from.Room {
				return l.Edges, true
			}
		case Clockwise:
			if to.Room != from.Room && to.Room == next {
				return l.Edges, true
			}
		case CounterClockwise:
			if to.Room != from.Room && to.Room == prev {
				return l.Edges, true
			}
		}
	}
	return EdgePair{}, false
}
