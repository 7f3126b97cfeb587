package app

import (
	"fmt"

	"shardring/internal/domain"
)

// ActionKind names an in-match action.
type ActionKind string

const (
	ActionEndTurn ActionKind = "endTurn"
	ActionRotate  ActionKind = "rotate"
	ActionMove    ActionKind = "move"
	ActionSwap    ActionKind = "swap"
)

// Action is a player's in-match request. Target is required for every kind
// except ActionEndTurn.
type Action struct {
	Kind   ActionKind
	Target *domain.Position
}

// Cost returns the action point cost of the action kind.
func (k ActionKind) Cost() int {
	switch k {
	case ActionRotate:
		return CostRotate
	case ActionMove:
		return CostMove
	case ActionSwap:
		return CostSwap
	default:
		return 0
	}
}

// SubmitAction validates and applies an action for the player holding the
// turn. Rejected actions leave the match untouched.
func (s *Service) SubmitAction(m *domain.MatchState, userID string, action Action) ([]Event, error) {
	if m.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	pl := m.CurrentPlayer()
	if pl == nil || pl.UserID != userID || !pl.Alive {
		return nil, ErrNotYourTurn
	}

	switch action.Kind {
	case ActionEndTurn:
		return s.endTurn(m, pl), nil
	case ActionRotate, ActionMove, ActionSwap:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}

	if action.Target == nil || pl.Pos == nil {
		return nil, ErrInvalidTarget
	}
	if pl.AP < action.Kind.Cost() {
		return nil, ErrInsufficientAP
	}
	target := m.Grid.ShardAt(*action.Target)
	if target == nil {
		return nil, ErrInvalidTarget
	}

	switch action.Kind {
	case ActionRotate:
		return s.rotate(m, pl, target, *action.Target)
	case ActionMove:
		return s.move(m, pl, *action.Target)
	default:
		return s.swap(m, pl, target, *action.Target)
	}
}

func (s *Service) rotate(m *domain.MatchState, pl *domain.Player, target *domain.Shard, at domain.Position) ([]Event, error) {
	if *pl.Pos != at {
		return nil, ErrInvalidTarget
	}
	if demonIn(m, pl.Pos.Room) {
		return nil, ErrDemonBlocksAbility
	}

	target.Rotate()
	pl.AP -= CostRotate

	return emit(m, nil, Event{
		Kind:    EventShardRotated,
		Line:    fmt.Sprintf("%s rotated the shard at %s", pl.Name, formatPos(at)),
		Payload: ShardRotatedPayload{UserID: pl.UserID, Target: at, Rotation: target.Rotation},
	}), nil
}

func (s *Service) move(m *domain.MatchState, pl *domain.Player, to domain.Position) ([]Event, error) {
	from := *pl.Pos
	if from == to {
		return nil, ErrInvalidTarget
	}

	conn := domain.CheckConnection(m.Grid, from, to)
	if !conn.OK {
		switch conn.Reason {
		case domain.ReasonNotAdjacent:
			return nil, ErrNotAdjacent
		case domain.ReasonColorMismatch:
			return nil, ErrColorMismatch
		default:
			return nil, ErrInvalidTarget
		}
	}

	pl.Pos = &domain.Position{Room: to.Room, Slot: to.Slot}
	pl.AP -= CostMove

	return emit(m, nil, Event{
		Kind:    EventPlayerMoved,
		Line:    fmt.Sprintf("%s moved to %s", pl.Name, formatPos(to)),
		Payload: PlayerMovedPayload{UserID: pl.UserID, From: from, To: to},
	}), nil
}

func (s *Service) swap(m *domain.MatchState, pl *domain.Player, target *domain.Shard, at domain.Position) ([]Event, error) {
	if demonIn(m, pl.Pos.Room) || demonIn(m, at.Room) {
		return nil, ErrDemonBlocksAbility
	}
	own := m.Grid.ShardAt(*pl.Pos)
	if own == nil {
		return nil, ErrInvalidTarget
	}

	domain.SwapFaces(own, target)
	pl.AP -= CostSwap

	return emit(m, nil, Event{
		Kind:    EventShardsSwapped,
		Line:    fmt.Sprintf("%s swapped the shards at %s and %s", pl.Name, formatPos(*pl.Pos), formatPos(at)),
		Payload: ShardsSwappedPayload{UserID: pl.UserID, A: *pl.Pos, B: at},
	}), nil
}

func (s *Service) endTurn(m *domain.MatchState, pl *domain.Player) []Event {
	events := emit(m, nil, Event{
		Kind: EventTurnEnded,
		Line: fmt.Sprintf("%s ended their turn", pl.Name),
	})
	before := len(events)
	events = s.advanceTurn(m, events)

	newRound := false
	for _, ev := range events[before:] {
		if ev.Kind == EventDemonMoved {
			newRound = true
			break
		}
	}
	events[0].Payload = TurnEndedPayload{UserID: pl.UserID, NextTurnIdx: m.TurnIdx, NewRound: newRound}
	return events
}

// advanceTurn moves the pointer to the next living player, running the demon
// each time the pointer wraps. The search gives up after MaxTurnSkips steps
// and leaves the pointer where it started.
func (s *Service) advanceTurn(m *domain.MatchState, events []Event) []Event {
	n := len(m.Players)
	if n == 0 {
		return events
	}
	start := m.TurnIdx
	for i := 0; i < MaxTurnSkips; i++ {
		m.TurnIdx++
		if m.TurnIdx >= n {
			m.TurnIdx = 0
			events = s.advanceRound(m, events)
		}
		if m.Players[m.TurnIdx].Alive {
			return events
		}
	}
	m.TurnIdx = start
	return emit(m, events, Event{Kind: EventNoSurvivors, Line: "No survivors remain"})
}

func demonIn(m *domain.MatchState, room int) bool {
	r, ok := m.DemonRoom()
	return ok && r == room
}

func formatPos(p domain.Position) string {
	return fmt.Sprintf("R%d S%d", p.Room+1, p.Slot)
}
