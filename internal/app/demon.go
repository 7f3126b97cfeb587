package app

import (
	"fmt"

	"shardring/internal/domain"
)

// advanceRound runs the end-of-round demon step: the demon moves one room
// clockwise, wounds every living player standing there, then every player's
// action points are restored.
func (s *Service) advanceRound(m *domain.MatchState, events []Event) []Event {
	next := 0
	if room, ok := m.DemonRoom(); ok {
		next = (room + 1) % m.Grid.Rooms
	}
	m.Demon.Room = domain.IntPtr(next)
	events = emit(m, events, Event{
		Kind:    EventDemonMoved,
		Line:    fmt.Sprintf("The demon moves to room %d", next+1),
		Payload: DemonMovedPayload{Room: next},
	})

	for _, pl := range m.Players {
		if !pl.Alive || pl.Pos == nil || pl.Pos.Room != next {
			continue
		}
		pl.HP--
		events = emit(m, events, Event{
			Kind:    EventPlayerDamaged,
			Line:    fmt.Sprintf("The demon strikes %s (%d HP left)", pl.Name, max(pl.HP, 0)),
			Payload: PlayerDamagedPayload{UserID: pl.UserID, HP: pl.HP},
		})
		if pl.HP <= 0 {
			pl.Alive = false
			events = emit(m, events, Event{
				Kind:    EventPlayerSlain,
				Line:    fmt.Sprintf("%s has fallen", pl.Name),
				Payload: PlayerSlainPayload{UserID: pl.UserID},
			})
		}
	}

	for _, pl := range m.Players {
		pl.AP = s.cfg.StartingAP
	}
	return emit(m, events, Event{
		Kind: EventActionRestored,
		Line: "A new round begins, action points restored",
	})
}
