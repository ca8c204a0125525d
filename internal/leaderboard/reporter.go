package leaderboard

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stack-top/internal/game"
	"github.com/vovakirdan/stack-top/internal/notify"
)

// Board is the remote store as the reporter uses it.
type Board interface {
	Fetch(ctx context.Context) ([]Entry, error)
	Submit(ctx context.Context, s Score) error
}

// Notifier shows progress toasts.
type Notifier interface {
	Show(msg string, d time.Duration) notify.Handle
	Update(h notify.Handle, msg string, d time.Duration)
}

// Toast texts.
const (
	MsgLoading    = "Loading leaderboard..."
	MsgLoadFailed = "Could not load leaderboard"
	MsgSaving     = "Saving score..."
	MsgSaved      = "Score saved!"
	MsgSaveFailed = "Could not save score"
)

// Reporter collects finished games from the loop and runs the save and
// refresh flows in the background. Network failures are logged and shown
// as toasts; they never reach the loop.
type Reporter struct {
	board    Board
	notifier Notifier
	logger   *log.Logger

	mu       sync.Mutex
	pending  *game.Result
	lastSave *Task[[]Entry] // Saves run one after another
}

// NewReporter creates a reporter. A nil logger discards output.
func NewReporter(b Board, n Notifier, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{board: b, notifier: n, logger: logger}
}

// ReportScore implements game.ScoreReporter. It only records the result;
// the front-end picks it up with Pending once it has a player name.
func (r *Reporter) ReportScore(res game.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = &res
}

// Pending returns and clears the last reported result.
func (r *Reporter) Pending() (game.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return game.Result{}, false
	}
	res := *r.pending
	r.pending = nil
	return res, true
}

// Refresh fetches the board in the background.
func (r *Reporter) Refresh(ctx context.Context) *Task[[]Entry] {
	h := r.notifier.Show(MsgLoading, 0)
	return Go(ctx, func(ctx context.Context) ([]Entry, error) {
		return r.fetch(ctx, h)
	})
}

// SaveScore submits res under player, then re-fetches the board.
// Saves run one at a time in call order: a save started while another is
// running waits for it to finish, successfully or not.
func (r *Reporter) SaveScore(ctx context.Context, player string, res game.Result) *Task[[]Entry] {
	score := Score{Player: player, Value: res.Score, Info: res.TimeLabel()}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.lastSave
	task := Go(ctx, func(ctx context.Context) ([]Entry, error) {
		if prev != nil {
			select {
			case <-prev.Done():
			case <-ctx.Done():
				r.logger.Warn("score submission abandoned", "player", score.Player, "score", score.Value, "error", ctx.Err())
				return nil, ctx.Err()
			}
		}

		h := r.notifier.Show(MsgSaving, 0)
		if err := r.board.Submit(ctx, score); err != nil {
			r.logger.Warn("score submission failed", "player", score.Player, "score", score.Value, "error", err)
			r.notifier.Update(h, MsgSaveFailed, 0)
			return nil, err
		}
		r.logger.Info("score saved", "player", score.Player, "score", score.Value, "time", score.Info)
		r.notifier.Update(h, MsgSaved, 0)

		return r.fetch(ctx, r.notifier.Show(MsgLoading, 0))
	})
	r.lastSave = task
	return task
}

func (r *Reporter) fetch(ctx context.Context, h notify.Handle) ([]Entry, error) {
	entries, err := r.board.Fetch(ctx)
	if err != nil {
		r.logger.Warn("leaderboard fetch failed", "error", err)
		r.notifier.Update(h, MsgLoadFailed, 0)
		return nil, err
	}
	r.logger.Debug("leaderboard fetched", "entries", len(entries))
	return entries, nil
}
