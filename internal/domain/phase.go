package domain

// String returns the wire representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether the phase may move to target.
// Phases only ever move forward.
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseLobby:
		return target == PhaseSetup
	case PhaseSetup:
		return target == PhasePlaying
	default:
		return false
	}
}

// TransitionTo moves the match to target if the phase machine allows it.
func (s *MatchState) TransitionTo(target Phase) bool {
	if !s.Phase.CanTransitionTo(target) {
		return false
	}
	s.Phase = target
	switch target {
	case PhaseSetup:
		s.SetupStep = 0
	case PhasePlaying:
		s.TurnIdx = 0
	}
	return true
}
