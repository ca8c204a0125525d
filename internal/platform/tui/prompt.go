package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/game"
	"github.com/vovakirdan/stack-top/internal/playername"
)

// promptWidth is the width of the name prompt box, borders included.
const promptWidth = 50

// namePrompt asks for a leaderboard name after the first finished game.
// It stays open until a valid name is entered or the player cancels.
type namePrompt struct {
	input  textinput.Model
	active bool
	err    error       // Last validation error
	result game.Result // Waiting to be submitted
}

func newNamePrompt() namePrompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "your name"
	ti.CharLimit = 32 // Longer input is rejected with a message, not cut off
	return namePrompt{input: ti}
}

// open shows the prompt for res.
func (p *namePrompt) open(res game.Result) tea.Cmd {
	p.active = true
	p.err = nil
	p.result = res
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *namePrompt) close() {
	p.active = false
	p.err = nil
	p.input.Blur()
	p.input.SetValue("")
}

// reject keeps the prompt open with a validation message.
func (p *namePrompt) reject(err error) {
	p.err = err
	p.input.SetValue("")
}

func (p *namePrompt) value() string {
	return strings.TrimSpace(p.input.Value())
}

// draw renders the prompt box centered on dst.
func (p *namePrompt) draw(dst *core.Screen) {
	if !p.active {
		return
	}

	w := min(promptWidth, dst.Width())
	const h = 7
	if w < 10 || dst.Height() < h {
		return
	}
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	inner := w - 4

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r)
	dst.DrawTextColored(r.X+2, r.Y, " Save your score ", core.ColorAccent)
	dst.DrawTextColored(r.X+2, r.Y+1, truncate("a-z 0-9 _ - · up to 10 chars", inner), core.ColorGray)

	// Input line with a block cursor at the caret
	value := []rune(p.input.Value())
	pos := min(p.input.Position(), len(value))
	line := p.input.Prompt + string(value[:pos])
	dst.DrawTextColored(r.X+2, r.Y+3, truncate(line, inner), core.ColorDefault)
	cursorX := r.X + 2 + len([]rune(line))
	if cursorX < r.Right()-2 {
		dst.SetColored(cursorX, r.Y+3, '▏', core.ColorAccent)
		rest := string(value[pos:])
		dst.DrawTextColored(cursorX+1, r.Y+3, truncate(rest, max(r.Right()-2-cursorX-1, 0)), core.ColorDefault)
	}

	if p.err != nil {
		dst.DrawTextColored(r.X+2, r.Y+4, truncate(playername.Message(p.err), inner), core.ColorError)
	}
	dst.DrawTextColored(r.X+2, r.Bottom()-1, " enter to save · esc to skip ", core.ColorPanel)
}
