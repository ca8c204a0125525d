package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stack-top/internal/leaderboard"
)

// Fetcher loads the leaderboard.
type Fetcher interface {
	Fetch(ctx context.Context) ([]leaderboard.Entry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// scoresMsg carries a finished fetch.
type scoresMsg struct {
	entries []leaderboard.Entry
	err     error
}

// ScoreboardModel is the Bubble Tea model for the standalone leaderboard browser.
type ScoreboardModel struct {
	fetcher  Fetcher
	gameID   string
	entries  []leaderboard.RankedEntry
	loading  bool
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(f Fetcher, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		fetcher: f,
		gameID:  gameID,
		loading: true,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 10},
	}

	// Give spare room to the time column
	tableWidth := m.width - 8
	if extra := tableWidth - 36 - 8; extra > 0 {
		columns[3].Width += min(extra, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the table with current entries.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rank := fmt.Sprintf("#%d", e.Rank)
		if sym := e.Medal.Symbol(); sym != "" {
			rank = sym
		}
		rows[i] = table.Row{
			rank,
			e.Player,
			fmt.Sprintf("%d", e.Points()),
			e.Info,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) fetchCmd() tea.Cmd {
	f := m.fetcher
	return func() tea.Msg {
		entries, err := f.Fetch(context.Background())
		return scoresMsg{entries: entries, err: err}
	}
}

// Init starts the first fetch.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.fetchCmd()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.fetchCmd()

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case scoresMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = leaderboard.Rank(msg.entries)
			m.updateTableRows()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("LEADERBOARD - %s", m.gameID)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a status message.
func (m ScoreboardModel) renderTableContent() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil && len(m.entries) == 0:
		return statusStyle.Render(fmt.Sprintf("Could not load leaderboard.\n%v", m.err))
	case m.loading && len(m.entries) == 0:
		return statusStyle.Render(drawerLoading)
	case len(m.entries) == 0:
		return statusStyle.Render(drawerEmpty)
	}
	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunScoreboard runs the leaderboard browser.
func RunScoreboard(f Fetcher, gameID string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(f, gameID, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
