package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stack-top/internal/surface"
)

// State is the phase of the game state machine.
type State int

const (
	StateIdle     State = iota // Never started
	StatePlaying               // A block is moving
	StateGameOver              // The last drop missed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Result is the outcome of a finished game.
type Result struct {
	Score   int
	Elapsed time.Duration
}

// TimeLabel formats the elapsed time the way it is shown on the leaderboard.
func (r Result) TimeLabel() string {
	return fmt.Sprintf("%.2fs", r.Elapsed.Seconds())
}

// ScoreReporter receives the result of every finished game.
// Implementations must return promptly; slow work belongs in the background.
type ScoreReporter interface {
	ReportScore(r Result)
}

// Loop drives a Stack over a Session: it owns the session, turns clock
// readings into frame deltas and runs the Idle -> Playing -> GameOver
// state machine.
type Loop struct {
	stack     *Stack
	session   *Session
	clock     Clock
	reporter  ScoreReporter
	logger    *log.Logger
	lastFrame time.Time
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithReporter sets the collaborator notified on game over.
func WithReporter(r ScoreReporter) Option {
	return func(l *Loop) { l.reporter = r }
}

// WithLogger sets the logger. By default the loop logs nowhere.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// NewLoop creates an idle loop. Call InitGame to start playing.
func NewLoop(p Params, surf surface.Surface, viewHeight float64, seed int64, opts ...Option) *Loop {
	l := &Loop{
		stack:   NewStack(p, surf, rand.New(rand.NewSource(seed)), viewHeight),
		session: &Session{},
		clock:   systemClock{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current phase.
func (l *Loop) State() State {
	switch {
	case l.session.Playing:
		return StatePlaying
	case l.session.Over:
		return StateGameOver
	default:
		return StateIdle
	}
}

// Session returns the live session. It is replaced on every InitGame.
func (l *Loop) Session() *Session {
	return l.session
}

// Score returns the current score.
func (l *Loop) Score() int {
	return l.session.Score
}

// InitGame starts a fresh session: base block, first moving block, score 1
// and camera at 0. Any previous session is discarded with its visuals.
func (l *Loop) InitGame() {
	l.stack.Release(l.session)

	now := l.clock.Now()
	s := &Session{
		Playing:   true,
		StartedAt: now,
	}
	l.stack.PlaceBase(s)
	s.Score = 1 // The base block counts
	l.stack.Spawn(s)
	l.stack.RefreshLabel(s)

	l.session = s
	l.lastFrame = now
	l.logger.Debug("game started", "view_height", l.stack.ViewHeight())
}

// Tick advances the simulation by the time elapsed since the previous tick.
// It does nothing unless a game is being played.
func (l *Loop) Tick() {
	if l.State() != StatePlaying {
		return
	}

	now := l.clock.Now()
	dt := now.Sub(l.lastFrame).Seconds()
	l.lastFrame = now
	l.Step(max(dt, 0))
}

// Step advances the simulation by dt seconds. Given the same seed and the
// same sequence of deltas and commits, the outcome is identical.
func (l *Loop) Step(dt float64) {
	if l.State() != StatePlaying {
		return
	}
	l.stack.Update(l.session, l.session.Current, dt)
	l.stack.Follow(l.session, dt)
}

// Commit drops the moving block. A miss ends the game.
func (l *Loop) Commit() CommitOutcome {
	outcome := l.stack.Commit(l.session)
	switch outcome {
	case CommitStacked:
		top := l.session.Top()
		l.logger.Debug("block stacked", "score", l.session.Score, "width", top.Width)
	case CommitMissed:
		l.endGame()
	}
	return outcome
}

// endGame moves to GameOver and hands the result to the reporter.
func (l *Loop) endGame() {
	s := l.session
	s.Over = true
	s.Playing = false

	l.stack.release(s.Current)
	s.Current = nil

	result := Result{
		Score:   s.Score,
		Elapsed: l.clock.Now().Sub(s.StartedAt),
	}
	l.logger.Info("game over", "score", result.Score, "time", result.TimeLabel())

	if l.reporter != nil {
		l.reporter.ReportScore(result)
	}
}

// Resize changes the visible height in world units. The game width, and with
// it the bounce boundaries and speeds, stay fixed.
func (l *Loop) Resize(viewHeight float64) {
	l.stack.SetViewHeight(viewHeight)
}

// Params returns the simulation parameters.
func (l *Loop) Params() Params {
	return l.stack.params
}
