package domain

import (
	"fmt"
	"testing"
)

func TestAdjacency(t *testing.T) {
	tests := []struct {
		name   string
		from   Position
		to     Position
		wantOK bool
		want   EdgePair
	}{
		{name: "S1 to S0", from: Position{2, 1}, to: Position{2, 0}, wantOK: true, want: EdgePair{1, 0}},
		{name: "S0 to S1", from: Position{2, 0}, to: Position{2, 1}, wantOK: true, want: EdgePair{0, 1}},
		{name: "S0 to S2", from: Position{0, 0}, to: Position{0, 2}, wantOK: true, want: EdgePair{2, 2}},
		{name: "S2 to S0", from: Position{0, 2}, to: Position{0, 0}, wantOK: true, want: EdgePair{2, 2}},
		{name: "S0 to S3", from: Position{4, 0}, to: Position{4, 3}, wantOK: true, want: EdgePair{1, 2}},
		{name: "S3 to S0", from: Position{4, 3}, to: Position{4, 0}, wantOK: true, want: EdgePair{2, 1}},
		{name: "cw S1 to S1", from: Position{1, 1}, to: Position{2, 1}, wantOK: true, want: EdgePair{2, 0}},
		{name: "cw S3 to S2", from: Position{1, 3}, to: Position{2, 2}, wantOK: true, want: EdgePair{0, 0}},
		{name: "ccw S1 to S1", from: Position{2, 1}, to: Position{1, 1}, wantOK: true, want: EdgePair{0, 2}},
		{name: "ccw S2 to S3", from: Position{2, 2}, to: Position{1, 3}, wantOK: true, want: EdgePair{0, 0}},
		{name: "cw wraps", from: Position{4, 1}, to: Position{0, 1}, wantOK: true, want: EdgePair{2, 0}},
		{name: "ccw wraps", from: Position{0, 2}, to: Position{4, 3}, wantOK: true, want: EdgePair{0, 0}},

		// Gaps in the table stay gaps.
		{name: "S1 S2 same room", from: Position{0, 1}, to: Position{0, 2}},
		{name: "S2 S1 same room", from: Position{0, 2}, to: Position{0, 1}},
		{name: "S1 S3 same room", from: Position{0, 1}, to: Position{0, 3}},
		{name: "S2 S3 same room", from: Position{0, 2}, to: Position{0, 3}},
		{name: "S3 S2 same room", from: Position{0, 3}, to: Position{0, 2}},
		{name: "cw S2 to S3", from: Position{1, 2}, to: Position{2, 3}},
		{name: "ccw S3 to S2", from: Position{2, 3}, to: Position{1, 2}},
		{name: "cw S0 to S0", from: Position{1, 0}, to: Position{2, 0}},
		{name: "two rooms away", from: Position{0, 1}, to: Position{2, 1}},
		{name: "same cell", from: Position{0, 0}, to: Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Adjacency(tt.from, tt.to, 5)
			if ok != tt.wantOK {
				t.Fatalf("Adjacency(%v, %v) ok = %t, want %t", tt.from, tt.to, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("Adjacency(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	const rooms = 5
	for fr := 0; fr < rooms; fr++ {
		for fs := 0; fs < 4; fs++ {
			for tr := 0; tr < rooms; tr++ {
				for ts := 0; ts < 4; ts++ {
					from, to := Position{fr, fs}, Position{tr, ts}
					ab, okAB := Adjacency(from, to, rooms)
					ba, okBA := Adjacency(to, from, rooms)
					if okAB != okBA {
						t.Fatalf("asymmetric adjacency %v<->%v: %t vs %t", from, to, okAB, okBA)
					}
					if okAB && (ab[0] != ba[1] || ab[1] != ba[0]) {
						t.Fatalf("edge pairs disagree %v<->%v: %v vs %v", from, to, ab, ba)
					}
				}
			}
		}
	}
}

func TestAdjacencyTwoRoomRingPrefersClockwise(t *testing.T) {
	got, ok := Adjacency(Position{0, 1}, Position{1, 1}, 2)
	if !ok || got != (EdgePair{2, 0}) {
		t.Fatalf("Adjacency on two-room ring = %v, %t; want clockwise edges", got, ok)
	}
	got, ok = Adjacency(Position{0, 2}, Position{1, 3}, 2)
	if !ok || got != (EdgePair{0, 0}) {
		t.Fatalf("Adjacency S2->S3 on two-room ring = %v, %t", got, ok)
	}
}

func TestAdjacencyNoRooms(t *testing.T) {
	if _, ok := Adjacency(Position{0, 0}, Position{0, 1}, 0); ok {
		t.Fatal("expected no adjacency without rooms")
	}
}

func TestTopologyEntriesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range Topology {
		key := fmt.Sprintf("%s:%d>%d", l.Dir, l.FromSlot, l.ToSlot)
		if seen[key] {
			t.Fatalf("duplicate topology entry %s", key)
		}
		seen[key] = true
	}
	if len(Topology) != 10 {
		t.Fatalf("topology has %d entries, want 10", len(Topology))
	}
}
