package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stack-top/internal/config"
	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/game"
	"github.com/vovakirdan/stack-top/internal/leaderboard"
	"github.com/vovakirdan/stack-top/internal/notify"
	"github.com/vovakirdan/stack-top/internal/playername"
	"github.com/vovakirdan/stack-top/internal/surface"
)

// Options configures a game Model.
type Options struct {
	// Context bounds the model's background work. Nil uses context.Background.
	Context context.Context

	Config  config.StackConfig
	Runtime core.RuntimeConfig

	// Board is the remote leaderboard. Nil disables saving and the drawer list.
	Board leaderboard.Board

	// Names caches the player name. Nil starts with an empty cache.
	Names *playername.Cache

	// Logger receives game and network logs. Nil discards them.
	Logger *log.Logger

	// Clock drives frame deltas. Nil uses the system clock.
	Clock game.Clock
}

// boardMsg carries the result of a leaderboard fetch.
type boardMsg struct {
	entries []leaderboard.Entry
	err     error
}

const gameOverHint = "GAME OVER · space to restart"

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for the stacking game.
type Model struct {
	cfg      config.StackConfig
	runtime  core.RuntimeConfig
	ctx      context.Context
	cancel   context.CancelFunc
	loop     *game.Loop
	router   *game.Router
	scene    *surface.Scene
	viewport surface.Viewport
	screen   *core.Screen
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	notifier *notify.Manager
	reporter *leaderboard.Reporter // Nil without a board
	names    *playername.Cache
	prompt   namePrompt
	drawer   drawer
	logger   *log.Logger
	quitting bool
}

// NewModel creates a new Bubble Tea model. The game starts in Init.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	names := opts.Names
	if names == nil {
		names = &playername.Cache{}
	}

	keys := DefaultKeyMap()
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	m := Model{
		cfg:      opts.Config,
		runtime:  cfg,
		ctx:      ctx,
		cancel:   cancel,
		scene:    surface.NewScene(),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     help.New(),
		notifier: notify.NewManager(notify.WithDefaultDuration(opts.Config.Notifications.Duration())),
		names:    names,
		prompt:   newNamePrompt(),
		logger:   logger,
	}
	m.layout()
	context.AfterFunc(ctx, m.notifier.Clear)

	loopOpts := []game.Option{game.WithLogger(logger)}
	if opts.Clock != nil {
		loopOpts = append(loopOpts, game.WithClock(opts.Clock))
	}
	if opts.Board != nil {
		m.reporter = leaderboard.NewReporter(opts.Board, m.notifier, logger)
		loopOpts = append(loopOpts, game.WithReporter(m.reporter))
	}

	m.loop = game.NewLoop(game.ParamsFromConfig(opts.Config), m.scene, m.viewport.ViewHeight(), cfg.Seed, loopOpts...)
	m.router = game.NewRouter(m.loop)
	return m
}

// Init starts the first game, the tick loop and the initial leaderboard fetch.
func (m Model) Init() tea.Cmd {
	m.loop.InitGame()

	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate), m.titleCmd()}
	if m.reporter != nil {
		cmds = append(cmds, waitBoard(m.ctx, m.reporter.Refresh(m.ctx)))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt.active {
			return m.updatePrompt(msg)
		}
		return m.handleAction(m.mapper.MapKey(msg))

	case tea.MouseMsg:
		if m.prompt.active {
			return m, nil
		}
		return m.handleAction(m.mapper.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.loop.Tick()
		return m, tickCmd(m.runtime.TickRate)

	case boardMsg:
		if msg.err == nil {
			m.drawer.setEntries(msg.entries)
		}
		return m, nil
	}

	if m.prompt.active {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleAction applies a semantic action.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.cancel()
		m.notifier.Clear()
		return m, tea.Quit

	case core.ActionToggleBoard:
		m.drawer.toggle(m.loop.State() == game.StatePlaying)
		return m, nil

	case core.ActionBack:
		m.drawer.open = false
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case core.ActionCommit:
		restarting := m.loop.State() == game.StateGameOver
		m.router.Handle(a)
		if restarting {
			m.drawer.open = false
		}

		cmds := []tea.Cmd{m.titleCmd()}
		if res, ok := m.pendingResult(); ok {
			var cmd tea.Cmd
			m, cmd = m.afterGameOver(res)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) pendingResult() (game.Result, bool) {
	if m.reporter == nil {
		return game.Result{}, false
	}
	return m.reporter.Pending()
}

// afterGameOver submits the result under the cached name or asks for one.
func (m Model) afterGameOver(res game.Result) (Model, tea.Cmd) {
	if name, ok := m.names.Get(); ok {
		return m, m.saveCmd(name, res)
	}
	cmd := m.prompt.open(res)
	return m, cmd
}

// updatePrompt routes keys to the name prompt while it is open.
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.handleAction(core.ActionQuit)

	case "esc":
		m.prompt.close()
		m.logger.Info("score not submitted, name prompt canceled")
		return m, nil

	case "enter":
		name := m.prompt.value()
		if name == "" {
			m.prompt.close()
			m.logger.Info("score not submitted, empty name")
			return m, nil
		}
		if err := m.names.Set(name); err != nil {
			m.prompt.reject(err)
			return m, nil
		}
		res := m.prompt.result
		m.prompt.close()
		return m, m.saveCmd(name, res)
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m Model) saveCmd(name string, res game.Result) tea.Cmd {
	return waitBoard(m.ctx, m.reporter.SaveScore(m.ctx, name, res))
}

// waitBoard turns a background fetch into a command.
func waitBoard(ctx context.Context, task *leaderboard.Task[[]leaderboard.Entry]) tea.Cmd {
	return func() tea.Msg {
		entries, err := task.Wait(ctx)
		return boardMsg{entries: entries, err: err}
	}
}

func (m Model) titleCmd() tea.Cmd {
	return tea.SetWindowTitle(fmt.Sprintf("Stack - Score: %d", m.loop.Score()))
}

// handleResize processes window resize events. Only the view height of the
// running game changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.layout()
	return m, nil
}

// layout sizes the playfield to the space above the help bar.
func (m *Model) layout() {
	m.help.Width = m.runtime.ScreenW
	footer := lipgloss.Height(m.help.View(m.keys))
	rows := max(m.runtime.ScreenH-footer, 1)

	m.screen.Resize(max(m.runtime.ScreenW, 1), rows)
	m.viewport = surface.NewViewport(m.runtime.ScreenW, rows, m.cfg.World.Width, m.cfg.World.BlockHeight)
	if m.loop != nil {
		m.loop.Resize(m.viewport.ViewHeight())
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scene.Draw(m.screen, m.viewport)

	if m.loop.State() == game.StateGameOver && !m.prompt.active {
		m.screen.DrawTextCentered(m.viewport.Rows/2+2, gameOverHint, core.ColorGray)
	}

	m.drawer.draw(m.screen)
	drawToasts(m.screen, m.notifier.Active())
	m.prompt.draw(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Score returns the current score.
func (m Model) Score() int {
	return m.loop.Score()
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks drop blocks
	)

	_, err := p.Run()
	return err
}
