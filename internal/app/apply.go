package app

import (
	"fmt"

	"shardring/internal/domain"
)

// RequestKind identifies the client request being applied.
type RequestKind int

const (
	RequestJoin RequestKind = iota + 1
	RequestStart
	RequestRoll
	RequestAction
	RequestDisconnect
)

func (k RequestKind) String() string {
	switch k {
	case RequestJoin:
		return "join"
	case RequestStart:
		return "start"
	case RequestRoll:
		return "roll"
	case RequestAction:
		return "action"
	case RequestDisconnect:
		return "disconnect"
	default:
		return fmt.Sprintf("request(%d)", int(k))
	}
}

// Request is a single client request against a match. Name is only read for
// joins and Action only for actions.
type Request struct {
	Kind   RequestKind
	UserID string
	Name   string
	Action Action
}

// Apply dispatches a request to its use-case. Requests for one match must be
// applied one at a time.
func (s *Service) Apply(m *domain.MatchState, req Request) ([]Event, error) {
	switch req.Kind {
	case RequestJoin:
		return s.Join(m, req.UserID, req.Name)
	case RequestStart:
		return s.Start(m)
	case RequestRoll:
		return s.RollDice(m, req.UserID)
	case RequestAction:
		return s.SubmitAction(m, req.UserID, req.Action)
	case RequestDisconnect:
		return s.Disconnect(m, req.UserID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, req.Kind)
	}
}
