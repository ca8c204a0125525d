package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stack-top/internal/core"
)

// KeyMap defines the key bindings of the game screen. It doubles as the
// help bar, which lists every available button.
type KeyMap struct {
	Drop  key.Binding
	Board key.Binding
	Back  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Board, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Drop, k.Board, k.Back},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Drop: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/click", "drop · restart"),
		),
		Board: key.NewBinding(
			key.WithKeys("l", "tab"),
			key.WithHelp("l", "leaderboard"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea input messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Drop):
		return core.ActionCommit
	case key.Matches(msg, km.keys.Board):
		return core.ActionToggleBoard
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// MapMouse translates a mouse message. A left button press anywhere is a
// commit, the same as space.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionCommit
	}
	return core.ActionNone
}
