package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"shardring/internal/domain"
)

// EnvPrefix scopes runtime env keys, e.g. SHARDRING_ROOMS.
const EnvPrefix = "SHARDRING_"

// GameConfig holds tunables for a match.
type GameConfig struct {
	Rooms      int `json:"rooms" env:"ROOMS"`
	Slots      int `json:"slots" env:"SLOTS"`
	MaxPlayers int `json:"max_players" env:"MAX_PLAYERS"`
	StartingHP int `json:"starting_hp" env:"STARTING_HP"`
	StartingAP int `json:"starting_ap" env:"STARTING_AP"`

	// Voice channel credentials; empty disables the voice token RPC.
	VoiceIssuer string `json:"voice_issuer" env:"VOICE_ISSUER"`
	VoiceDomain string `json:"voice_domain" env:"VOICE_DOMAIN"`
	VoiceSecret string `json:"-" env:"VOICE_SECRET"`
}

// Default returns the standard five-room, four-slot board.
func Default() GameConfig {
	return GameConfig{
		Rooms:      5,
		Slots:      4,
		MaxPlayers: domain.MaxPlayers,
		StartingHP: domain.StartingHP,
		StartingAP: domain.StartingAP,
	}
}

// LoadGameConfig reads a JSON config file on top of the defaults.
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read game config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays values from a runtime env map. Keys that are absent leave
// the current value untouched.
func ApplyEnv(cfg *GameConfig, vars map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Environment: vars,
		Prefix:      EnvPrefix,
	}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the board shape and budgets are playable.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Rooms < 2 {
		errs = append(errs, fmt.Errorf("rooms must be at least 2, got %d", c.Rooms))
	}
	if c.Slots < 4 {
		errs = append(errs, fmt.Errorf("slots must be at least 4, got %d", c.Slots))
	}
	if c.MaxPlayers < 1 || c.MaxPlayers > domain.MaxPlayers {
		errs = append(errs, fmt.Errorf("max_players must be within 1..%d, got %d", domain.MaxPlayers, c.MaxPlayers))
	}
	if c.StartingHP < 1 {
		errs = append(errs, fmt.Errorf("starting_hp must be positive, got %d", c.StartingHP))
	}
	if c.StartingAP < 1 {
		errs = append(errs, fmt.Errorf("starting_ap must be positive, got %d", c.StartingAP))
	}
	return errors.Join(errs...)
}

// VoiceEnabled reports whether voice credentials are complete.
func (c GameConfig) VoiceEnabled() bool {
	return c.VoiceIssuer != "" && c.VoiceDomain != "" && c.VoiceSecret != ""
}
