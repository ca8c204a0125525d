package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stack-top/internal/game"
	"github.com/vovakirdan/stack-top/internal/notify"
)

// fakeBoard is an in-memory Board.
type fakeBoard struct {
	mu        sync.Mutex
	entries   []Entry
	submitted []Score
	submitErr error
	reject    string // Submit fails for this player
	fetchErr  error
	gate      chan struct{} // Blocks Submit until closed, if set
}

func (b *fakeBoard) Fetch(context.Context) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return append([]Entry(nil), b.entries...), nil
}

func (b *fakeBoard) Submit(_ context.Context, s Score) error {
	if b.gate != nil {
		<-b.gate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.submitErr != nil {
		return b.submitErr
	}
	if b.reject != "" && s.Player == b.reject {
		return errors.New("rejected")
	}
	b.submitted = append(b.submitted, s)
	b.entries = append(b.entries, Entry{Player: s.Player, Value: float64(s.Value), Info: s.Info})
	return nil
}

func messages(m *notify.Manager) []string {
	var out []string
	for _, t := range m.Active() {
		out = append(out, t.Message)
	}
	return out
}

func newTestReporter(b Board) (*Reporter, *notify.Manager) {
	n := notify.NewManager(notify.WithDefaultDuration(time.Hour))
	return NewReporter(b, n, nil), n
}

func TestReporterPending(t *testing.T) {
	r, _ := newTestReporter(&fakeBoard{})

	_, ok := r.Pending()
	assert.False(t, ok)

	var sr game.ScoreReporter = r
	sr.ReportScore(game.Result{Score: 9, Elapsed: 1500 * time.Millisecond})

	res, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, 9, res.Score)

	_, ok = r.Pending()
	assert.False(t, ok, "Pending must clear the result")
}

func TestSaveScoreFlow(t *testing.T) {
	board := &fakeBoard{entries: []Entry{{Player: "old", Value: 3}}}
	r, n := newTestReporter(board)

	task := r.SaveScore(context.Background(), "alice", game.Result{Score: 12, Elapsed: 4250 * time.Millisecond})
	entries, err := task.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Score{{Player: "alice", Value: 12, Info: "4.25s"}}, board.submitted)
	assert.Len(t, entries, 2)
	assert.Equal(t, []string{MsgSaved, MsgLoading}, messages(n))
}

func TestSaveScoreFailure(t *testing.T) {
	board := &fakeBoard{submitErr: errors.New("offline")}
	r, n := newTestReporter(board)

	_, err := r.SaveScore(context.Background(), "alice", game.Result{Score: 2}).Wait(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{MsgSaveFailed}, messages(n))

	// A failed save does not block the next one
	board.submitErr = nil
	_, err = r.SaveScore(context.Background(), "alice", game.Result{Score: 3}).Wait(context.Background())
	assert.NoError(t, err)
}

func TestSaveScoreQueuesBehindRunningSave(t *testing.T) {
	board := &fakeBoard{gate: make(chan struct{})}
	r, n := newTestReporter(board)

	first := r.SaveScore(context.Background(), "alice", game.Result{Score: 3, Elapsed: time.Second})
	second := r.SaveScore(context.Background(), "alice", game.Result{Score: 7, Elapsed: 2 * time.Second})

	select {
	case <-second.Done():
		t.Fatal("second save finished while the first was still submitting")
	case <-time.After(20 * time.Millisecond):
	}

	close(board.gate)
	_, err := first.Wait(context.Background())
	require.NoError(t, err)
	entries, err := second.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Score{
		{Player: "alice", Value: 3, Info: "1.00s"},
		{Player: "alice", Value: 7, Info: "2.00s"},
	}, board.submitted)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, countMessages(n, MsgSaved))
}

func TestSaveScoreRunsAfterFailedSave(t *testing.T) {
	board := &fakeBoard{gate: make(chan struct{}), reject: "alice"}
	r, n := newTestReporter(board)

	first := r.SaveScore(context.Background(), "alice", game.Result{Score: 3})
	second := r.SaveScore(context.Background(), "bob", game.Result{Score: 4})
	close(board.gate)

	_, err := first.Wait(context.Background())
	assert.Error(t, err)
	_, err = second.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Score{{Player: "bob", Value: 4, Info: "0.00s"}}, board.submitted)
	assert.Equal(t, 1, countMessages(n, MsgSaveFailed))
	assert.Equal(t, 1, countMessages(n, MsgSaved))
}

func TestQueuedSaveStopsOnCancel(t *testing.T) {
	board := &fakeBoard{gate: make(chan struct{})}
	r, _ := newTestReporter(board)

	first := r.SaveScore(context.Background(), "alice", game.Result{Score: 3})

	ctx, cancel := context.WithCancel(context.Background())
	second := r.SaveScore(ctx, "alice", game.Result{Score: 7})
	cancel()

	_, err := second.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)

	close(board.gate)
	_, err = first.Wait(context.Background())
	require.NoError(t, err)
	assert.Len(t, board.submitted, 1)
}

func countMessages(m *notify.Manager, msg string) int {
	n := 0
	for _, got := range messages(m) {
		if got == msg {
			n++
		}
	}
	return n
}

func TestRefresh(t *testing.T) {
	board := &fakeBoard{entries: []Entry{{Player: "a", Value: 1}}}
	r, n := newTestReporter(board)

	entries, err := r.Refresh(context.Background()).Wait(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, []string{MsgLoading}, messages(n))

	board.fetchErr = errors.New("down")
	_, err = r.Refresh(context.Background()).Wait(context.Background())
	assert.Error(t, err)
	assert.Contains(t, messages(n), MsgLoadFailed)
}
