package app

import (
	"fmt"

	"shardring/internal/domain"
)

// Join seats a new player in the lobby. name may be empty.
func (s *Service) Join(m *domain.MatchState, userID, name string) ([]Event, error) {
	if m.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}
	if _, ok := m.PlayerByUserID(userID); ok {
		return nil, ErrAlreadyJoined
	}
	if len(m.Players) >= s.cfg.MaxPlayers {
		return nil, ErrRoomFull
	}

	pl := domain.NewPlayer(userID, name, len(m.Players), s.cfg.StartingHP, s.cfg.StartingAP)
	m.Players = append(m.Players, pl)

	return emit(m, nil, Event{
		Kind:    EventPlayerJoined,
		Line:    fmt.Sprintf("%s joined the game", pl.Name),
		Payload: PlayerJoinedPayload{UserID: userID, PublicID: pl.PublicID},
	}), nil
}

// Start moves the lobby into the setup dice phase.
func (s *Service) Start(m *domain.MatchState) ([]Event, error) {
	if m.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}
	if len(m.Players) < MinPlayersToStart {
		return nil, ErrNoPlayers
	}
	m.TransitionTo(domain.PhaseSetup)

	return emit(m, nil, Event{
		Kind: EventSetupStarted,
		Line: "The match has started, roll for your starting rooms",
	}), nil
}

// RollDice performs the next setup roll. Players roll in join order; once all
// have rolled, the next roll places the demon and starts play.
func (s *Service) RollDice(m *domain.MatchState, userID string) ([]Event, error) {
	if m.Phase != domain.PhaseSetup {
		return nil, ErrWrongPhase
	}

	if roller := m.PendingRoller(); roller != nil {
		if roller.UserID != userID {
			return nil, ErrNotYourTurn
		}
		roll := s.rng.Intn(m.Grid.Rooms)
		roller.Pos = &domain.Position{Room: roll, Slot: domain.DefaultSlot}
		m.SetupStep++
		skipOfflineRollers(m)

		return emit(m, nil, Event{
			Kind:    EventDiceRolled,
			Line:    fmt.Sprintf("%s rolled %d", roller.Name, roll+1),
			Payload: DiceRolledPayload{UserID: userID, Room: roll},
		}), nil
	}

	if _, ok := m.PlayerByUserID(userID); !ok {
		return nil, ErrUnknownPlayer
	}
	roll := s.rng.Intn(m.Grid.Rooms)
	m.Demon.Room = domain.IntPtr(roll)
	m.TransitionTo(domain.PhasePlaying)
	seekAlive(m)

	return emit(m, nil, Event{
		Kind:    EventDemonSummoned,
		Line:    fmt.Sprintf("The demon descends on room %d", roll+1),
		Payload: DemonSummonedPayload{Room: roll},
	}), nil
}

// Disconnect handles a dropped connection. In the lobby the player is removed
// and later players shift down one public index; afterwards the player is
// kept in place and marked not alive. A player who is already out of the
// match changes nothing.
func (s *Service) Disconnect(m *domain.MatchState, userID string) ([]Event, error) {
	pl, ok := m.PlayerByUserID(userID)
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if m.Phase == domain.PhaseLobby {
		m.RemovePlayer(userID)
		return emit(m, nil, Event{
			Kind:    EventPlayerLeft,
			Line:    fmt.Sprintf("%s left the game", pl.Name),
			Payload: PlayerLeftPayload{UserID: userID, Removed: true},
		}), nil
	}

	if !pl.Alive {
		return nil, nil
	}

	wasTurn := m.Phase == domain.PhasePlaying && m.CurrentPlayer() == pl
	line := fmt.Sprintf("%s disconnected", pl.Name)
	pl.Alive = false
	pl.Name += " (offline)"

	events := emit(m, nil, Event{
		Kind:    EventPlayerLeft,
		Line:    line,
		Payload: PlayerLeftPayload{UserID: userID},
	})

	switch m.Phase {
	case domain.PhaseSetup:
		skipOfflineRollers(m)
	case domain.PhasePlaying:
		if wasTurn {
			events = s.advanceTurn(m, events)
		}
	}
	return events, nil
}

// skipOfflineRollers moves setup progress past players who can no longer roll.
func skipOfflineRollers(m *domain.MatchState) {
	for m.SetupStep < len(m.Players) && !m.Players[m.SetupStep].Alive {
		m.SetupStep++
	}
}

// seekAlive points the turn at the first living player without starting a
// new round. The pointer stays put when nobody is alive.
func seekAlive(m *domain.MatchState) {
	for i := 0; i < len(m.Players); i++ {
		idx := (m.TurnIdx + i) % len(m.Players)
		if m.Players[idx].Alive {
			m.TurnIdx = idx
			return
		}
	}
}
