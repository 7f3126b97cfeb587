package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"shardring/internal/config"
)

const (
	VoiceActionLogin = "login"
	VoiceActionJoin  = "join"

	voiceTokenTTL = time.Hour
)

var ErrVoiceDisabled = errors.New("voice chat is not configured")

// VoiceService issues signed access tokens for the per-match voice channel.
type VoiceService struct {
	secret string
	issuer string
	domain string

	now func() time.Time
	rng *rand.Rand
}

// NewVoiceService builds a VoiceService from the voice fields of cfg.
func NewVoiceService(cfg config.GameConfig, rng *rand.Rand) *VoiceService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &VoiceService{
		secret: cfg.VoiceSecret,
		issuer: cfg.VoiceIssuer,
		domain: cfg.VoiceDomain,
		now:    time.Now,
		rng:    rng,
	}
}

// GenerateToken signs an HS256 token for user. Join tokens target the channel
// named after matchID; login tokens target the user itself.
func (s *VoiceService) GenerateToken(user, action, matchID string) (string, error) {
	if s == nil || s.secret == "" || s.issuer == "" || s.domain == "" {
		return "", ErrVoiceDisabled
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}

	from := s.userURI(user)
	to, err := s.targetURI(action, matchID, from)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"iat": now.Unix(),
		"exp": now.Add(voiceTokenTTL).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", now.UnixNano(), s.rng.Int63()),
		"f":   from,
		"t":   to,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *VoiceService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}

func (s *VoiceService) channelURI(matchID string) string {
	return "sip:confctl-g-shardring-" + matchID + "@" + s.domain
}

func (s *VoiceService) targetURI(action, matchID, userURI string) (string, error) {
	switch action {
	case VoiceActionLogin:
		return userURI, nil
	case VoiceActionJoin:
		if matchID == "" {
			return "", fmt.Errorf("match id is required for join tokens")
		}
		return s.channelURI(matchID), nil
	default:
		return "", fmt.Errorf("unsupported voice action: %s", action)
	}
}
