package app

import (
	"errors"
	"math/rand"
	"time"

	"shardring/internal/config"
	"shardring/internal/domain"
)

// Service contains the match use-cases operating on domain state.
type Service struct {
	cfg config.GameConfig
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(cfg config.GameConfig, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{cfg: cfg, rng: rng}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() config.GameConfig {
	return s.cfg
}

// NewMatch creates a lobby-phase match with a freshly generated shard grid.
func (s *Service) NewMatch() *domain.MatchState {
	return domain.NewMatchState(domain.NewGrid(s.cfg.Rooms, s.cfg.Slots, s.rng))
}

var (
	ErrWrongPhase         = errors.New("request not valid in current phase")
	ErrRoomFull           = errors.New("room is full")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrInsufficientAP     = errors.New("not enough action points")
	ErrInvalidTarget      = errors.New("invalid target position")
	ErrNotAdjacent        = errors.New("positions are not adjacent")
	ErrColorMismatch      = errors.New("edge colors do not match")
	ErrDemonBlocksAbility = errors.New("the demon blocks this ability")
	ErrUnknownPlayer      = errors.New("player not found")
	ErrNoPlayers          = errors.New("not enough players to start")
	ErrUnknownAction      = errors.New("unknown action")
	ErrAlreadyJoined      = errors.New("already joined")
)

// IsJoinError reports whether err is one of the join rejections shown to the
// requester.
func IsJoinError(err error) bool {
	return errors.Is(err, ErrWrongPhase) || errors.Is(err, ErrRoomFull)
}

// ShouldNotify reports whether a failed request is surfaced to its sender.
// Only join rejections are; every other rejection is dropped silently.
func ShouldNotify(req Request, err error) bool {
	return err != nil && req.Kind == RequestJoin && IsJoinError(err)
}
