package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"shardring/internal/ports"
)

var (
	adjectives = []string{"Ashen", "Brave", "Clever", "Dim", "Gilded", "Hollow", "Quiet", "Swift", "Wary", "Wild"}
	nouns      = []string{"Warden", "Seeker", "Shard", "Lantern", "Wisp", "Raven", "Pilgrim", "Mason", "Scout", "Oracle"}
)

// Service handles post-auth onboarding for new users.
type Service struct {
	profiles ports.ProfilePort
	rng      *rand.Rand
}

// NewService constructs an onboarding service. profiles must be non-nil; rng
// may be nil to use a time-seeded default.
func NewService(profiles ports.ProfilePort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		profiles: profiles,
		rng:      rng,
	}
}

// OnboardNewUser gives a freshly created account a friendly display name,
// which later becomes the default in-match player name. It returns the name
// that was applied.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (string, error) {
	if s == nil || s.profiles == nil {
		return "", fmt.Errorf("onboarding service not configured")
	}

	name := s.FriendlyName()
	if err := s.profiles.SetDisplayName(ctx, userID, name); err != nil {
		return "", fmt.Errorf("failed to update profile: %w", err)
	}
	return name, nil
}

// FriendlyName returns a random two-word name with a numeric suffix.
func (s *Service) FriendlyName() string {
	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
