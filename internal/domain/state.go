package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "LOBBY"
	// PhaseSetup is the dice phase where spawn rooms and the demon room are rolled.
	PhaseSetup Phase = "SETUP"
	// PhasePlaying is the active phase where players spend action points.
	PhasePlaying Phase = "PLAYING"
)

const (
	// MaxPlayers is the hard cap on seats in a match.
	MaxPlayers = 5
	// StartingHP is the hit points a player joins with.
	StartingHP = 3
	// StartingAP is the per-round action point budget.
	StartingAP = 3
	// DefaultSlot is the slot a player occupies after the setup roll.
	DefaultSlot = 1
)

// PlayerColors is the cosmetic palette indexed by public index.
var PlayerColors = [MaxPlayers]string{"#00d2d3", "#e056fd", "#ff9f43", "#2ecc71", "#ff6b81"}

// Position addresses a shard by room and slot.
type Position struct {
	Room int
	Slot int
}

// Player holds state for a participant in the match.
type Player struct {
	UserID   string // connection handle
	PublicID int    // dense 0..N-1 in join order
	Name     string
	Color    string
	Pos      *Position // nil until the setup roll
	HP       int
	AP       int
	Alive    bool
}

// Demon is the roaming entity that damages players sharing its room.
type Demon struct {
	Room *int // nil until the setup roll
}

// MatchState holds authoritative state for a single match instance.
type MatchState struct {
	Phase Phase

	Players []*Player // join order; index == PublicID
	Demon   Demon
	Grid    *Grid

	// TurnIdx is meaningful only in PhasePlaying.
	TurnIdx int
	// SetupStep is meaningful only in PhaseSetup.
	SetupStep int

	Log []string // append-only
}

// NewMatchState creates a lobby-phase match over the given grid.
func NewMatchState(grid *Grid) *MatchState {
	return &MatchState{
		Phase: PhaseLobby,
		Grid:  grid,
	}
}
