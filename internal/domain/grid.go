package domain

import "math/rand"

const (
	// RotationStep is the rotation increment in degrees.
	RotationStep = 120
	// EdgeCount is the number of edges on a shard.
	EdgeCount = 3
	// ColorCount is the number of distinct edge colors.
	ColorCount = 3
)

// Shard is a single rotatable grid cell with three colored edges.
type Shard struct {
	Room     int
	Slot     int
	Rotation int            // 0, 120 or 240
	Edges    [EdgeCount]int // stored colors, each 0..ColorCount-1
}

// Grid is the fixed R×S collection of shards. Cells are never added or removed.
type Grid struct {
	Rooms  int
	Slots  int
	Shards []Shard // row-major by room
}

// NewGrid creates a rooms×slots grid with uniform-random rotations and edge colors.
func NewGrid(rooms, slots int, rng *rand.Rand) *Grid {
	g := &Grid{
		Rooms:  rooms,
		Slots:  slots,
		Shards: make([]Shard, 0, rooms*slots),
	}
	for r := 0; r < rooms; r++ {
		for s := 0; s < slots; s++ {
			sh := Shard{
				Room:     r,
				Slot:     s,
				Rotation: rng.Intn(EdgeCount) * RotationStep,
			}
			for e := range sh.Edges {
				sh.Edges[e] = rng.Intn(ColorCount)
			}
			g.Shards = append(g.Shards, sh)
		}
	}
	return g
}

// Contains reports whether p addresses a cell of the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Room >= 0 && p.Room < g.Rooms && p.Slot >= 0 && p.Slot < g.Slots
}

// ShardAt returns the shard at p, or nil when p is outside the grid.
func (g *Grid) ShardAt(p Position) *Shard {
	if g == nil || !g.Contains(p) {
		return nil
	}
	idx := p.Room*g.Slots + p.Slot
	if idx >= len(g.Shards) {
		return nil
	}
	return &g.Shards[idx]
}

// Rotate advances the shard by one rotation step, wrapping at 360.
func (s *Shard) Rotate() {
	s.Rotation = (s.Rotation + RotationStep) % 360
}

// RotationSteps returns the rotation expressed in 120° steps.
func (s *Shard) RotationSteps() int {
	return s.Rotation / RotationStep
}

// ColorAt returns the color shown on physical edge e after rotation.
func (s *Shard) ColorAt(edge int) int {
	return s.Edges[(edge-s.RotationSteps()+EdgeCount)%EdgeCount]
}

// SwapFaces exchanges rotation and edge colors between two shards.
// Coordinates stay with the cell.
func SwapFaces(a, b *Shard) {
	a.Rotation, b.Rotation = b.Rotation, a.Rotation
	a.Edges, b.Edges = b.Edges, a.Edges
}
