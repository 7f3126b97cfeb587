package domain

import "fmt"

// PlayerColor returns the cosmetic color for a public index.
func PlayerColor(publicID int) string {
	if publicID < 0 {
		return ""
	}
	return PlayerColors[publicID%len(PlayerColors)]
}

// DefaultPlayerName is used when a player joins without a name.
func DefaultPlayerName(publicID int) string {
	return fmt.Sprintf("Player %d", publicID+1)
}

// NewPlayer builds a player in its join-time default state.
func NewPlayer(userID, name string, publicID, hp, ap int) *Player {
	if name == "" {
		name = DefaultPlayerName(publicID)
	}
	return &Player{
		UserID:   userID,
		PublicID: publicID,
		Name:     name,
		Color:    PlayerColor(publicID),
		HP:       hp,
		AP:       ap,
		Alive:    true,
	}
}

// SamePosition reports whether a and b address the same cell. Nil never matches.
func SamePosition(a, b *Position) bool {
	return a != nil && b != nil && *a == *b
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int {
	return &v
}
