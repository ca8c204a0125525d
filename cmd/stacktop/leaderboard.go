package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stack-top/internal/lbserver"
	"github.com/vovakirdan/stack-top/internal/leaderboard"
	"github.com/vovakirdan/stack-top/internal/platform/tui"
	"github.com/vovakirdan/stack-top/internal/playername"
	"github.com/vovakirdan/stack-top/internal/storage"
)

var (
	flagPlain bool

	flagSubmitName string
	flagSubmitInfo string

	flagLocalDB    string
	flagLocalGame  string
	flagLocalLimit int
	flagLocalClear bool

	flagLBAddr  string
	flagLBDB    string
	flagLBLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Show the leaderboard",
	Long: `Display the leaderboard configured in the game config.

The top three entries get gold, silver and bronze medals.

Examples:
  stacktop leaderboard
  stacktop leaderboard --plain
  stacktop lb --config ./local.yaml`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

var submitCmd = &cobra.Command{
	Use:   "submit <score>",
	Short: "Submit a score by hand",
	Long: `Submit a score to the leaderboard.

Without --name you are asked for a name until a valid one is given
(a-z, 0-9, _ and -, up to 10 characters). An empty line cancels.

Examples:
  stacktop leaderboard submit 12
  stacktop leaderboard submit 12 --name alice --info 8.40s`,
	Args: cobra.ExactArgs(1),
	Run:  runSubmit,
}

var lbServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard HTTP server",
	Long: `Start an HTTP server that stores scores in SQLite.

Endpoints:
  GET  /lb?gameid=<id>[&limit=n]  - Best scores, highest first
  POST /score                     - Save {gameid, player, value, addi}
  GET  /stats?gameid=<id>         - Aggregate stats

Point leaderboard.base_url in the game config at this server.

Examples:
  stacktop leaderboard serve
  stacktop leaderboard serve --addr :9000 --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runLeaderboardServe,
}

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Show or clear scores in a local leaderboard database",
	Long: `Display the best scores stored by "stacktop leaderboard serve".

With --clear, all scores of the game are deleted instead. This is meant
for server operators and asks for no confirmation.

Examples:
  stacktop leaderboard local
  stacktop leaderboard local --db ./scores.db --limit 20
  stacktop leaderboard local --game stack-test --clear`,
	Args: cobra.NoArgs,
	Run:  runLocal,
}

func init() {
	defaults := lbserver.DefaultServerConfig()

	leaderboardCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the leaderboard as text")

	submitCmd.Flags().StringVar(&flagSubmitName, "name", "", "Player name")
	submitCmd.Flags().StringVar(&flagSubmitInfo, "info", "", "Extra info, such as the game time")

	lbServeCmd.Flags().StringVar(&flagLBAddr, "addr", defaults.Address, "HTTP listen address (host:port)")
	lbServeCmd.Flags().StringVar(&flagLBDB, "db", defaults.DBPath, "Path to scores database")
	lbServeCmd.Flags().IntVar(&flagLBLimit, "limit", defaults.Limit, "Default number of entries per board")

	localCmd.Flags().StringVar(&flagLocalDB, "db", defaults.DBPath, "Path to scores database")
	localCmd.Flags().StringVar(&flagLocalGame, "game", "", "Game id (defaults to leaderboard.game_id from the config)")
	localCmd.Flags().IntVar(&flagLocalLimit, "limit", 10, "Number of entries to show")
	localCmd.Flags().BoolVar(&flagLocalClear, "clear", false, "Delete all scores of the game")

	leaderboardCmd.AddCommand(submitCmd)
	leaderboardCmd.AddCommand(localCmd)
	leaderboardCmd.AddCommand(lbServeCmd)
}

// newClient builds a leaderboard client from the game config.
func newClient() *leaderboard.Client {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	if gameCfg.Leaderboard.BaseURL == "" {
		fail("no leaderboard.base_url configured")
	}
	return leaderboard.NewClient(gameCfg.Leaderboard)
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	client := newClient()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(client, client.GameID(), width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := client.Fetch(ctx)
	if err != nil {
		cancel()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", client.GameID())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stacktop' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Player", "Score", "Time")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "------", "-----", "----")

	for _, e := range leaderboard.Rank(entries) {
		rank := strconv.Itoa(e.Rank)
		if sym := e.Medal.Symbol(); sym != "" {
			rank = sym
		}
		fmt.Printf("  %-4s  %-10s  %-6d  %s\n", rank, e.Player, e.Points(), e.Info)
	}
}

func runSubmit(_ *cobra.Command, args []string) {
	value, err := strconv.Atoi(args[0])
	if err != nil || value < 0 {
		fail("score must be a non-negative integer, got %q", args[0])
	}

	client := newClient()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names := &playername.Cache{}
	if flagSubmitName != "" {
		if err := names.Set(flagSubmitName); err != nil {
			stop()
			fail("%s", playername.Message(err))
		}
	}

	name, ok := names.Resolve(ctx, playername.NewLinePrompter(os.Stdin, os.Stdout))
	if !ok {
		fmt.Println("Submission canceled.")
		return
	}

	submitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	score := leaderboard.Score{Player: name, Value: value, Info: flagSubmitInfo}
	if err := client.Submit(submitCtx, score); err != nil {
		cancel()
		stop()
		fail("submitting score: %v", err)
	}
	fmt.Printf("Saved %d for %s.\n", value, name)
}

func runLeaderboardServe(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagLBDB)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	cfg := lbserver.DefaultServerConfig()
	cfg.Address = flagLBAddr
	cfg.DBPath = flagLBDB
	cfg.Limit = flagLBLimit

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting leaderboard server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := lbserver.NewServer(cfg, store, nil).ListenAndServe(ctx); err != nil {
		stop()
		store.Close()
		fail("server: %v", err)
	}
}

func runLocal(_ *cobra.Command, _ []string) {
	gameID := flagLocalGame
	if gameID == "" {
		gameCfg, err := loadGameConfig()
		if err != nil {
			fail("%v", err)
		}
		gameID = gameCfg.Leaderboard.GameID
	}

	store, err := storage.Open(flagLocalDB)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if err := localScores(context.Background(), os.Stdout, store, gameID, flagLocalLimit, flagLocalClear); err != nil {
		store.Close()
		fail("%v", err)
	}
}

// localScores prints the best scores of gameID, or deletes them all when
// wipe is set.
func localScores(ctx context.Context, w io.Writer, store *storage.Store, gameID string, limit int, wipe bool) error {
	if wipe {
		if err := store.ClearScores(ctx, gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintf(w, "Cleared all scores for %s.\n", gameID)
		return nil
	}

	scores, err := store.TopScores(ctx, gameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n", gameID)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-8s  %s\n", "----", "------", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10s  %-6d  %-8s  %s\n", i+1, entry.Player, entry.Score, entry.Info, dateStr)
	}

	// Show high score
	fmt.Fprintln(w)
	if highScore, err := store.HighScore(ctx, gameID); err == nil {
		fmt.Fprintf(w, "Best: %d\n", highScore)
	}
	return nil
}
