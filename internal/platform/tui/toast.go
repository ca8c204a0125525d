package tui

import (
	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/notify"
)

// drawToasts stacks toasts in the bottom-right corner, newest at the bottom.
func drawToasts(dst *core.Screen, toasts []notify.Toast) {
	bottom := dst.Height() - 1
	for i, t := range toasts {
		y := bottom - (len(toasts) - 1 - i)
		if y < 0 {
			continue
		}
		text := " " + truncate(t.Message, max(dst.Width()-4, 1)) + " "
		x := dst.Width() - len([]rune(text)) - 1
		dst.DrawTextColored(max(x, 0), y, text, core.ColorToast)
	}
}
