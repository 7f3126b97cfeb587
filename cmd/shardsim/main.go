// Command shardsim replays YAML scenarios against the match engine offline.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shardring/internal/config"
	"shardring/internal/ports/nakama"
	"shardring/internal/scenario"
)

var (
	verbose    bool
	seedFlag   int64
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shardsim",
	Short: "Offline scenario runner for shardring matches",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay a scenario and print the match log and final snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "rng seed (overrides the scenario seed)")
	runCmd.Flags().StringVar(&configPath, "config", "", "game config JSON file")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath, environ())
	if err != nil {
		return err
	}

	seed, err := pickSeed(cmd.Flags().Changed("seed"), seedFlag, sc.Seed)
	if err != nil {
		return err
	}

	report := scenario.NewRunner(cfg, logger).Run(sc, seed)
	if err := writeReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if n := len(report.Mismatches()); n > 0 {
		return fmt.Errorf("%d step(s) did not meet their expectation", n)
	}
	return nil
}

// loadConfig reads path (or the defaults when empty), overlays SHARDRING_*
// variables and validates the result.
func loadConfig(path string, vars map[string]string) (config.GameConfig, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadGameConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg, vars); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

func pickSeed(flagSet bool, flagValue int64, scenarioSeed *int64) (int64, error) {
	switch {
	case flagSet:
		return flagValue, nil
	case scenarioSeed != nil:
		return *scenarioSeed, nil
	default:
		return scenario.NewSeed()
	}
}

func writeReport(w io.Writer, report scenario.Report) error {
	fmt.Fprintf(w, "seed: %d\n", report.Seed)
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Fprintf(w, "step %d: %s %s dropped: %v\n", res.Index, res.Step.Player, res.Step.Do, res.Err)
		}
	}

	fmt.Fprintln(w, "log:")
	for _, line := range report.Match.Log {
		fmt.Fprintf(w, "  %s\n", line)
	}

	snapshot, err := nakama.EncodeSnapshot(report.Match)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", snapshot)
	return err
}

func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
