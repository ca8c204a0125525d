package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stack-top/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorCoral:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	core.ColorTeal:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
	core.ColorSky:      lipgloss.NewStyle().Foreground(lipgloss.Color("#45B7D1")),
	core.ColorSalmon:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA07A")),
	core.ColorMint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#98D8C8")),
	core.ColorSand:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F")),
	core.ColorLavender: lipgloss.NewStyle().Foreground(lipgloss.Color("#BB8FCE")),
	core.ColorPowder:   lipgloss.NewStyle().Foreground(lipgloss.Color("#85C1E2")),
	core.ColorPeach:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B88B")),
	core.ColorWheat:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FAD7A1")),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGold:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB400")).Bold(true),
	core.ColorSilver:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true),
	core.ColorBronze:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CD7F32")).Bold(true),
	core.ColorLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Bold(true),
	core.ColorPanel:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorToast:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")),
	core.ColorError:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
