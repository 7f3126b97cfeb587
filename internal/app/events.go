package app

import "shardring/internal/domain"

// EventKind identifies emitted match events for dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventPlayerLeft     EventKind = "player_left"
	EventSetupStarted   EventKind = "setup_started"
	EventDiceRolled     EventKind = "dice_rolled"
	EventDemonSummoned  EventKind = "demon_summoned"
	EventShardRotated   EventKind = "shard_rotated"
	EventPlayerMoved    EventKind = "player_moved"
	EventShardsSwapped  EventKind = "shards_swapped"
	EventTurnEnded      EventKind = "turn_ended"
	EventDemonMoved     EventKind = "demon_moved"
	EventPlayerDamaged  EventKind = "player_damaged"
	EventPlayerSlain    EventKind = "player_slain"
	EventActionRestored EventKind = "action_restored"
	EventNoSurvivors    EventKind = "no_survivors"
)

// Event is a match event. Line is the human-readable entry appended to the
// match log.
type Event struct {
	Kind    EventKind
	Line    string
	Payload any
}

type PlayerJoinedPayload struct {
	UserID   string
	PublicID int
}

type PlayerLeftPayload struct {
	UserID  string
	Removed bool // false when marked offline in place
}

type DiceRolledPayload struct {
	UserID string
	Room   int
}

type DemonSummonedPayload struct {
	Room int
}

type ShardRotatedPayload struct {
	UserID   string
	Target   domain.Position
	Rotation int
}

type PlayerMovedPayload struct {
	UserID string
	From   domain.Position
	To     domain.Position
}

type ShardsSwappedPayload struct {
	UserID string
	A      domain.Position
	B      domain.Position
}

type TurnEndedPayload struct {
	UserID      string
	NextTurnIdx int
	NewRound    bool
}

type DemonMovedPayload struct {
	Room int
}

type PlayerDamagedPayload struct {
	UserID string
	HP     int
}

type PlayerSlainPayload struct {
	UserID string
}

// emit records the event line in the match log and appends it to events.
func emit(m *domain.MatchState, events []Event, ev Event) []Event {
	m.AppendLog(ev.Line)
	return append(events, ev)
}
