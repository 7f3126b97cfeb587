package app

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shardring/internal/config"
	"shardring/internal/domain"
)

func newTestService(seed int64) *Service {
	return NewService(config.Default(), rand.New(rand.NewSource(seed)))
}

// playingMatch builds a match already in PLAYING with one player per position
// (user ids u1..uN) and every shard cleared to color 0, rotation 0.
func playingMatch(svc *Service, demonRoom int, positions ...domain.Position) *domain.MatchState {
	m := svc.NewMatch()
	for i := range m.Grid.Shards {
		m.Grid.Shards[i].Rotation = 0
		m.Grid.Shards[i].Edges = [3]int{}
	}
	for i, pos := range positions {
		pl := domain.NewPlayer(fmt.Sprintf("u%d", i+1), "", i, svc.cfg.StartingHP, svc.cfg.StartingAP)
		pl.Pos = &domain.Position{Room: pos.Room, Slot: pos.Slot}
		m.Players = append(m.Players, pl)
	}
	m.Demon.Room = domain.IntPtr(demonRoom)
	m.Phase = domain.PhasePlaying
	return m
}

func lines(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Line)
	}
	return out
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestNewMatchUsesConfiguredBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Rooms = 3
	cfg.Slots = 6
	svc := NewService(cfg, rand.New(rand.NewSource(1)))

	m := svc.NewMatch()
	require.NotNil(t, m.Grid)
	assert.Equal(t, domain.PhaseLobby, m.Phase)
	assert.Equal(t, 3, m.Grid.Rooms)
	assert.Equal(t, 6, m.Grid.Slots)
	assert.Len(t, m.Grid.Shards, 18)
	assert.Empty(t, m.Players)
	assert.Nil(t, m.Demon.Room)
}

func TestNewServiceDefaultsRNG(t *testing.T) {
	svc := NewService(config.Default(), nil)
	require.NotNil(t, svc.rng)
	assert.Equal(t, config.Default(), svc.Config())
}

func TestIsJoinError(t *testing.T) {
	assert.True(t, IsJoinError(ErrWrongPhase))
	assert.True(t, IsJoinError(ErrRoomFull))
	assert.True(t, IsJoinError(fmt.Errorf("join: %w", ErrRoomFull)))
	assert.False(t, IsJoinError(ErrAlreadyJoined))
	assert.False(t, IsJoinError(ErrNotYourTurn))
	assert.False(t, IsJoinError(nil))
}

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		err  error
		want bool
	}{
		{"join wrong phase", Request{Kind: RequestJoin}, ErrWrongPhase, true},
		{"join full", Request{Kind: RequestJoin}, ErrRoomFull, true},
		{"join ok", Request{Kind: RequestJoin}, nil, false},
		{"duplicate join", Request{Kind: RequestJoin}, ErrAlreadyJoined, false},
		{"roll wrong phase", Request{Kind: RequestRoll}, ErrWrongPhase, false},
		{"invalid move", Request{Kind: RequestAction}, ErrColorMismatch, false},
		{"start no players", Request{Kind: RequestStart}, ErrNoPlayers, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldNotify(tt.req, tt.err))
		})
	}
}
