// Package surface abstracts the drawing capabilities the simulation needs:
// colored rectangles that can be moved or removed and a single score label.
// The simulation owns Handles but never sees how they are drawn.
package surface

import "github.com/vovakirdan/stack-top/internal/core"

// Handle identifies a rectangle created on a Surface.
// The zero Handle is never issued.
type Handle uint64

// Surface is the rendering capability used by the game.
// Coordinates are screen-space world units: x is the rectangle center and
// y is the center after the camera offset has been applied.
type Surface interface {
	// CreateRect adds a rectangle and returns its handle.
	CreateRect(x, y, w, h float64, c core.Color) Handle

	// SetPosition moves an existing rectangle. Unknown handles are ignored.
	SetPosition(h Handle, x, y float64)

	// Remove releases a rectangle. Removing twice is a no-op.
	Remove(h Handle)

	// SetLabel replaces the score label text.
	SetLabel(text string)
}
