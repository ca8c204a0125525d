package tui

import (
	"fmt"

	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/leaderboard"
)

// drawerWidth is the width of the leaderboard drawer, borders included.
const drawerWidth = 36

// Drawer texts.
const (
	drawerTitle   = "Leaderboard"
	drawerLoading = "Loading scores..."
	drawerEmpty   = "No saved scores."
)

// drawer is the leaderboard side panel.
type drawer struct {
	open    bool
	loaded  bool
	entries []leaderboard.RankedEntry
}

// toggle opens or closes the drawer. It never opens while a game runs.
func (d *drawer) toggle(playing bool) {
	if playing {
		d.open = false
		return
	}
	d.open = !d.open
}

// setEntries replaces the list with a fresh fetch.
func (d *drawer) setEntries(entries []leaderboard.Entry) {
	d.entries = leaderboard.Rank(entries)
	d.loaded = true
}

// lines returns the drawer body, one colored line per row.
func (d *drawer) lines() []drawerLine {
	switch {
	case !d.loaded:
		return []drawerLine{{text: drawerLoading, color: core.ColorGray}}
	case len(d.entries) == 0:
		return []drawerLine{{text: drawerEmpty, color: core.ColorGray}}
	}

	out := make([]drawerLine, 0, len(d.entries))
	for _, e := range d.entries {
		color := e.Medal.Color()
		out = append(out, drawerLine{
			text:  fmt.Sprintf("%3d. %-10s %5d (%s)", e.Rank, truncate(e.Player, 10), e.Points(), e.Info),
			color: color,
		})
	}
	return out
}

type drawerLine struct {
	text  string
	color core.Color
}

// draw renders the open drawer on the right edge of dst.
func (d *drawer) draw(dst *core.Screen) {
	if !d.open {
		return
	}

	w := min(drawerWidth, dst.Width())
	h := dst.Height()
	if w < 4 || h < 3 {
		return
	}
	r := core.NewRect(dst.Width()-w, 0, w, h)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r)
	dst.DrawTextColored(r.X+2, r.Y, " "+drawerTitle+" ", core.ColorAccent)

	inner := w - 4
	for i, line := range d.lines() {
		y := r.Y + 1 + i
		if y >= r.Bottom()-1 {
			break
		}
		dst.DrawTextColored(r.X+2, y, truncate(line.text, inner), line.color)
	}
	dst.DrawTextColored(r.X+2, r.Bottom()-1, " esc to close ", core.ColorPanel)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
