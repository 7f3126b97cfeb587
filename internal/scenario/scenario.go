// Package scenario replays scripted match requests against the engine
// without a Nakama server.
package scenario

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Step verbs.
const (
	DoJoin   = "join"
	DoStart  = "start"
	DoRoll   = "roll"
	DoRotate = "rotate"
	DoMove   = "move"
	DoSwap   = "swap"
	DoEnd    = "end"
	DoLeave  = "leave"
)

// Expectations a step may assert.
const (
	ExpectOK      = "ok"
	ExpectDropped = "dropped"
)

// Step is one scripted request. Player is a script-local alias; Room and Slot
// are required for rotate, move and swap.
type Step struct {
	Player string `yaml:"player"`
	Do     string `yaml:"do"`
	Name   string `yaml:"name,omitempty"`
	Room   *int   `yaml:"room,omitempty"`
	Slot   *int   `yaml:"slot,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

// Scenario is a named list of steps. Seed is optional; without one the run
// draws a fresh seed.
type Scenario struct {
	Name  string `yaml:"name"`
	Seed  *int64 `yaml:"seed,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Load reads and validates a YAML scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that every step is well formed.
func (sc Scenario) Validate() error {
	for i, st := range sc.Steps {
		switch st.Do {
		case DoStart:
		case DoJoin, DoRoll, DoEnd, DoLeave:
			if st.Player == "" {
				return fmt.Errorf("step %d: %s needs a player", i+1, st.Do)
			}
		case DoRotate, DoMove, DoSwap:
			if st.Player == "" {
				return fmt.Errorf("step %d: %s needs a player", i+1, st.Do)
			}
			if st.Room == nil || st.Slot == nil {
				return fmt.Errorf("step %d: %s needs room and slot", i+1, st.Do)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Do)
		}
		switch st.Expect {
		case "", ExpectOK, ExpectDropped:
		default:
			return fmt.Errorf("step %d: unknown expectation %q", i+1, st.Expect)
		}
	}
	return nil
}

// UserID maps a script alias to a stable synthetic user id.
func UserID(alias string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("shardring/"+alias)).String()
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
