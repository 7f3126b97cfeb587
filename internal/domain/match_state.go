package domain

// PlayerByUserID returns the player bound to the given connection handle.
func (s *MatchState) PlayerByUserID(userID string) (*Player, bool) {
	for _, p := range s.Players {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer returns the player at the turn pointer, if any.
func (s *MatchState) CurrentPlayer() *Player {
	if s.TurnIdx < 0 || s.TurnIdx >= len(s.Players) {
		return nil
	}
	return s.Players[s.TurnIdx]
}

// PendingRoller returns the player expected to roll during setup, or nil once
// every player has rolled and only the demon roll remains.
func (s *MatchState) PendingRoller() *Player {
	if s.SetupStep < 0 || s.SetupStep >= len(s.Players) {
		return nil
	}
	return s.Players[s.SetupStep]
}

// AliveCount returns the number of players still alive.
func (s *MatchState) AliveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// RemovePlayer drops the player with userID and re-densifies public indices.
// It reports whether a player was removed.
func (s *MatchState) RemovePlayer(userID string) bool {
	for i, p := range s.Players {
		if p.UserID != userID {
			continue
		}
		s.Players = append(s.Players[:i], s.Players[i+1:]...)
		s.reindex()
		return true
	}
	return false
}

// DemonRoom returns the demon's room and whether it has been placed.
func (s *MatchState) DemonRoom() (int, bool) {
	if s.Demon.Room == nil {
		return 0, false
	}
	return *s.Demon.Room, true
}

// AppendLog records a human-readable event line.
func (s *MatchState) AppendLog(line string) {
	s.Log = append(s.Log, line)
}

func (s *MatchState) reindex() {
	for i, p := range s.Players {
		p.PublicID = i
		p.Color = PlayerColor(i)
	}
}
