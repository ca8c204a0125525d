package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/leaderboard"
	"github.com/vovakirdan/stack-top/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing Stack.

Controls:
  Space/Enter/Click - Drop the block, or restart after game over
  L/Tab             - Show the leaderboard (between games)
  Esc               - Close the leaderboard
  ?                 - More help
  Q/Ctrl+C          - Quit

After your first game you are asked for a name (a-z, 0-9, _ and -, up to
10 characters). It is kept until you quit, so later scores are saved
without asking. Press esc to skip saving.

Difficulty options:
  easy   - Slower blocks and a wider base
  normal - Default speed range
  hard   - Faster blocks

Examples:
  stacktop play
  stacktop play --difficulty easy
  stacktop play --config ./my-stack.yaml --log-file stack.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := openLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var board leaderboard.Board
	if gameCfg.Leaderboard.BaseURL != "" {
		board = leaderboard.NewClient(gameCfg.Leaderboard)
	} else {
		logger.Warn("leaderboard disabled, no base_url configured")
	}

	logger.Info("starting game", "width", width, "height", height, "seed", flagSeed)
	if err := tui.Run(tui.Options{
		Config:  gameCfg,
		Runtime: runtime,
		Board:   board,
		Logger:  logger,
	}); err != nil {
		closer.Close()
		fail("running game: %v", err)
	}
}
