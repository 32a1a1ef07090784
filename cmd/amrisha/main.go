// amrisha plays a scripted first-response scenario: a snakebite, venom
// spreading, the wearable detecting and classifying the toxin, and the
// antidote injection. The same simulation core drives live terminal
// playback, PNG frame export, a keyframe timeline, and the narration
// track.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/amrisha/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
	seed       uint64

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "amrisha",
	Short: "Amrisha wearable antidote demo",
	Long: `Amrisha plays the wearable-antidote narrative: snake approach, bite,
venom spread, toxin classification, antidote injection, recovery.

Subcommands select the output backend; the simulation itself is
identical and deterministic across all of them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
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
}

// loadConfig builds the effective configuration for a command run
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	logger.Debug("configuration loaded",
		zap.String("path", configPath),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("fps", cfg.Render.FPS))
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "particle RNG seed override")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(framesCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(narrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
