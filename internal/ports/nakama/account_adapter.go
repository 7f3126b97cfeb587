package nakama

import (
	"context"
	"fmt"

	"shardring/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// ProfileAdapter implements ports.ProfilePort using Nakama's account API.
type ProfileAdapter struct {
	nk runtime.NakamaModule
}

// NewProfileAdapter creates a new profile adapter.
func NewProfileAdapter(nk runtime.NakamaModule) *ProfileAdapter {
	return &ProfileAdapter{nk: nk}
}

// SetDisplayName updates only the display name; empty fields are left unchanged by Nakama.
func (a *ProfileAdapter) SetDisplayName(ctx context.Context, userID, displayName string) error {
	if err := a.nk.AccountUpdateId(ctx, userID, "", nil, displayName, "", "", "", ""); err != nil {
		return fmt.Errorf("account update %s: %w", userID, err)
	}
	return nil
}

var _ ports.ProfilePort = (*ProfileAdapter)(nil)
