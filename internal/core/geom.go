// Package core provides fundamental types and utilities for the stacking game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Span is a closed horizontal interval [Left, Right] in world units.
type Span struct {
	Left, Right float64
}

// SpanAround returns the span of a footprint of the given width centered on x.
func SpanAround(x, width float64) Span {
	half := width / 2
	return Span{Left: x - half, Right: x + half}
}

// Width returns Right - Left. It is negative for an empty span.
func (s Span) Width() float64 {
	return s.Right - s.Left
}

// Center returns the midpoint of the span.
func (s Span) Center() float64 {
	return (s.Left + s.Right) / 2
}

// Overlap returns the intersection of two spans.
// When the spans are disjoint the result has Width() <= 0.
func (s Span) Overlap(other Span) Span {
	return Span{
		Left:  max(s.Left, other.Left),
		Right: min(s.Right, other.Right),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
