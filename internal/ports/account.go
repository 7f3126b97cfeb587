package ports

import "context"

// ProfilePort updates public profile fields of a platform account.
type ProfilePort interface {
	// SetDisplayName replaces the display name shown to other players.
	// Returns an error if the platform rejects the update.
	SetDisplayName(ctx context.Context, userID, displayName string) error
}
