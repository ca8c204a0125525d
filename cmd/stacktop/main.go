// stacktop is a block stacking game for the terminal with a shared
// online leaderboard.
//
// Usage:
//
//	stacktop                        - Play (same as "stacktop play")
//	stacktop play                   - Play the game
//	stacktop serve                  - Start SSH server for remote play
//	stacktop leaderboard            - Browse the leaderboard
//	stacktop leaderboard submit <n> - Submit a score by hand
//	stacktop leaderboard serve      - Start the leaderboard HTTP server
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Path to a custom stack.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-file <path>     - Write game logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stack-top/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacktop",
	Short: "Stack - stack blocks as high as you can",
	Long: `Stack is a one-button stacking game for the terminal.

A block slides back and forth above the tower. Drop it with space or a
mouse click; whatever hangs over the block below is cut off. Miss
entirely and the game is over.

Available commands:
  play         - Play the game (default)
  serve        - Start SSH server for remote play
  leaderboard  - Browse, submit to or serve the leaderboard

Examples:
  stacktop
  stacktop --difficulty hard
  stacktop serve --ssh :2222
  stacktop leaderboard --plain`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// loadGameConfig loads the game config and applies the difficulty flag.
func loadGameConfig() (config.StackConfig, error) {
	cfg, err := config.LoadStack(flagConfig)
	if err != nil {
		return config.StackConfig{}, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.StackConfig{}, fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
		config.ApplyStackPreset(&cfg, preset)
	}
	return cfg, nil
}

// openLogger returns a logger writing to --log-file, or a discarding one.
// The returned closer must be called on exit.
func openLogger() (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "stacktop",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
