package surface

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/stack-top/internal/core"
)

// BlockChar is the glyph used to fill rectangles.
const BlockChar = '█'

// Rect is a rectangle held by a Scene.
type Rect struct {
	X, Y  float64 // Center, screen-space world units
	W, H  float64
	Color core.Color
}

// Span returns the horizontal extent of the rectangle.
func (r Rect) Span() core.Span {
	return core.SpanAround(r.X, r.W)
}

// Scene is an in-memory Surface. It is not safe for concurrent use; the game
// loop and the renderer run on the same goroutine.
type Scene struct {
	rects *intmap.Map[Handle, Rect]
	order []Handle // Live handles, ascending
	next  Handle
	label string
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		rects: intmap.New[Handle, Rect](64),
	}
}

// CreateRect implements Surface.
func (s *Scene) CreateRect(x, y, w, h float64, c core.Color) Handle {
	s.next++
	s.rects.Put(s.next, Rect{X: x, Y: y, W: w, H: h, Color: c})
	s.order = append(s.order, s.next)
	return s.next
}

// SetPosition implements Surface.
func (s *Scene) SetPosition(h Handle, x, y float64) {
	r, ok := s.rects.Get(h)
	if !ok {
		return
	}
	r.X, r.Y = x, y
	s.rects.Put(h, r)
}

// Remove implements Surface.
func (s *Scene) Remove(h Handle) {
	if _, ok := s.rects.Get(h); !ok {
		return
	}
	s.rects.Del(h)
	if i, ok := slices.BinarySearch(s.order, h); ok {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// SetLabel implements Surface.
func (s *Scene) SetLabel(text string) {
	s.label = text
}

// Label returns the current label text.
func (s *Scene) Label() string {
	return s.label
}

// Len returns the number of live rectangles.
func (s *Scene) Len() int {
	return s.rects.Len()
}

// Rect returns the rectangle for a handle.
func (s *Scene) Rect(h Handle) (Rect, bool) {
	return s.rects.Get(h)
}

// Handles returns live handles in creation order.
func (s *Scene) Handles() []Handle {
	return slices.Clone(s.order)
}

// Viewport maps world units onto terminal cells.
type Viewport struct {
	OffsetX     int     // Column of world x = 0
	UnitsPerCol float64 // World units covered by one column
	UnitsPerRow float64 // World units covered by one row
	Cols        int     // Playfield width in columns
	Rows        int     // Playfield height in rows
}

// NewViewport fits a world of the given width into a screen, one block per row.
// The playfield is centered horizontally and never wider than the screen.
func NewViewport(screenW, screenH int, worldWidth, blockHeight float64) Viewport {
	cols := core.Clamp(screenW, 1, 80)
	return Viewport{
		OffsetX:     (screenW - cols) / 2,
		UnitsPerCol: worldWidth / float64(cols),
		UnitsPerRow: blockHeight,
		Cols:        cols,
		Rows:        max(screenH, 1),
	}
}

// ViewHeight returns the height of the view in world units.
func (v Viewport) ViewHeight() float64 {
	return float64(v.Rows) * v.UnitsPerRow
}

// CellRect converts a scene rectangle to the covered terminal cells.
// Edges are rounded to the nearest cell boundary so adjacent blocks tile.
// Columns outside the playfield are cut off.
func (v Viewport) CellRect(r Rect) core.Rect {
	span := r.Span()
	// Clipped to the playfield; slivers stay one column wide
	left := core.Clamp(int(math.Round(span.Left/v.UnitsPerCol)), 0, v.Cols-1)
	right := core.Clamp(int(math.Round(span.Right/v.UnitsPerCol)), left+1, v.Cols)
	top := int(math.Floor((r.Y - r.H/2) / v.UnitsPerRow))
	rows := max(int(math.Round(r.H/v.UnitsPerRow)), 1)
	return core.NewRect(v.OffsetX+left, top, right-left, rows)
}

// Draw rasterises the label and all rectangles onto dst.
// The label is drawn first so blocks pass in front of it.
func (s *Scene) Draw(dst *core.Screen, v Viewport) {
	if s.label != "" {
		x := v.OffsetX + (v.Cols-utf8.RuneCountInString(s.label))/2
		dst.DrawTextColored(x, v.Rows/2, s.label, core.ColorLabel)
	}
	for _, h := range s.order {
		r, _ := s.rects.Get(h)
		dst.DrawRect(v.CellRect(r), BlockChar, r.Color)
	}
}
