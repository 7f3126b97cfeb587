package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shardring/internal/config"
	"shardring/internal/scenario"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", map[string]string{"SHARDRING_ROOMS": "7", "UNRELATED": "x"})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rooms)
	assert.Equal(t, config.Default().Slots, cfg.Slots)

	_, err = loadConfig("", map[string]string{"SHARDRING_SLOTS": "2"})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rooms": 3}`), 0o600))
	cfg, err = loadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Rooms)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestPickSeed(t *testing.T) {
	fromScript := int64(5)

	seed, err := pickSeed(true, 9, &fromScript)
	require.NoError(t, err)
	assert.EqualValues(t, 9, seed)

	seed, err = pickSeed(false, 0, &fromScript)
	require.NoError(t, err)
	assert.EqualValues(t, 5, seed)

	_, err = pickSeed(false, 0, nil)
	assert.NoError(t, err)
}

func TestRunScenarioCommand(t *testing.T) {
	script := `
name: solo
steps:
  - {player: ann, do: join, name: Ann}
  - {player: ann, do: start}
  - {player: ann, do: roll}
  - {player: ann, do: roll}
  - {player: ann, do: swap, room: 9, slot: 0, expect: dropped}
  - {player: ann, do: end, expect: ok}
`
	path := filepath.Join(t.TempDir(), "solo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	logger = zap.NewNop()
	seedFlag = 3
	t.Cleanup(func() { seedFlag = 0 })

	var out bytes.Buffer
	runCmd.SetOut(&out)
	require.NoError(t, runCmd.Flags().Set("seed", "3"))
	require.NoError(t, runScenario(runCmd, []string{path}))

	text := out.String()
	assert.Contains(t, text, "seed: 3\n")
	assert.Contains(t, text, "step 5: ann swap dropped: invalid target position")
	assert.Contains(t, text, "  Ann joined the game\n")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	var snap map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &snap))
	assert.Equal(t, "PLAYING", snap["phase"])
}

func TestWriteReportListsDroppedSteps(t *testing.T) {
	sc := scenario.Scenario{Steps: []scenario.Step{{Player: "a", Do: scenario.DoRoll}}}
	report := scenario.NewRunner(config.Default(), nil).Run(sc, 1)

	var out bytes.Buffer
	require.NoError(t, writeReport(&out, report))
	assert.Contains(t, out.String(), "step 1: a roll dropped: request not valid in current phase")
}
