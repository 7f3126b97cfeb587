package app

// MinPlayersToStart is the number of joined players required to leave the lobby.
const MinPlayersToStart = 1

// Action point costs.
const (
	CostRotate = 1
	CostMove   = 1
	CostSwap   = 2
)

// MaxTurnSkips bounds the search for the next living player.
const MaxTurnSkips = 10
