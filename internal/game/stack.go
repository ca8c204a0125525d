package game

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/surface"
)

// CommitOutcome is the result of dropping the moving block.
type CommitOutcome int

const (
	// CommitIgnored means there was nothing to drop (no moving block or game over).
	CommitIgnored CommitOutcome = iota
	// CommitStacked means the block overlapped and was trimmed onto the stack.
	CommitStacked
	// CommitMissed means the block missed the stack entirely.
	CommitMissed
)

// String returns a human-readable name for the outcome.
func (o CommitOutcome) String() string {
	switch o {
	case CommitIgnored:
		return "ignored"
	case CommitStacked:
		return "stacked"
	case CommitMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Stack implements block spawning, movement, stacking and camera follow
// over a Session. It keeps the Session's visuals in sync with the Surface.
type Stack struct {
	params     Params
	surface    surface.Surface
	rng        *rand.Rand
	viewHeight float64 // Height of the visible area in world units
}

// NewStack creates a Stack drawing onto surf.
func NewStack(p Params, surf surface.Surface, rng *rand.Rand, viewHeight float64) *Stack {
	return &Stack{
		params:     p,
		surface:    surf,
		rng:        rng,
		viewHeight: viewHeight,
	}
}

// createBlock builds a block and its visual. The color follows the stack height.
func (st *Stack) createBlock(s *Session, x, y, width, speed float64, direction int) *Block {
	b := &Block{
		X:         x,
		Y:         y,
		Width:     width,
		Direction: direction,
		Speed:     speed,
	}
	b.handle = st.surface.CreateRect(x, y-s.CameraY, width, st.params.BlockHeight, core.BlockColor(len(s.Blocks)))
	return b
}

// release removes a block's visual.
func (st *Stack) release(b *Block) {
	if b != nil {
		st.surface.Remove(b.handle)
	}
}

// PlaceBase puts the base block centered near the bottom of the view.
func (st *Stack) PlaceBase(s *Session) {
	y := st.viewHeight - st.params.BaseOffset - st.params.BlockHeight/2
	base := st.createBlock(s, st.params.GameWidth/2, y, st.params.InitialBlockWidth, 0, 1)
	s.Blocks = append(s.Blocks, base)
}

// Spawn creates the next moving block one row above the top of the stack.
// It always starts at the left edge (x = 0) with the top block's width and
// a random speed and direction.
func (st *Stack) Spawn(s *Session) {
	last := s.Top()
	if last == nil {
		return
	}

	speed := st.params.MinSpeed + st.rng.Float64()*(st.params.MaxSpeed-st.params.MinSpeed)
	direction := -1
	if st.rng.Intn(2) == 1 {
		direction = 1
	}

	s.Current = st.createBlock(s, 0, last.Y-st.params.BlockHeight, last.Width, speed, direction)
}

// Update advances a moving block by dt seconds, bouncing off both edges
// of the playfield. Bounces never change speed or width.
func (st *Stack) Update(s *Session, b *Block, dt float64) {
	if b == nil {
		return
	}

	b.X += float64(b.Direction) * b.Speed * dt

	half := b.Width / 2
	if b.X-half <= 0 {
		b.X = half
		b.Direction = 1
	} else if b.X+half >= st.params.GameWidth {
		b.X = st.params.GameWidth - half
		b.Direction = -1
	}

	st.surface.SetPosition(b.handle, b.X, b.Y-s.CameraY)
}

// Commit drops the moving block onto the top of the stack.
// A positive overlap becomes a new settled block and the next block spawns;
// no overlap reports CommitMissed and leaves the session for the caller to end.
func (st *Stack) Commit(s *Session) CommitOutcome {
	if s.Current == nil || s.Over {
		return CommitIgnored
	}

	current := s.Current
	last := s.Top()
	if last == nil {
		return CommitIgnored
	}
	overlap := current.Span().Overlap(last.Span())

	if overlap.Width() <= 0 {
		return CommitMissed
	}

	settled := st.createBlock(s, overlap.Center(), current.Y, overlap.Width(), 0, 1)
	st.release(current)

	s.Blocks = append(s.Blocks, settled)
	s.Score++
	st.RefreshLabel(s)

	st.Spawn(s)
	return CommitStacked
}

// Follow eases the camera toward the top of the stack and prunes settled
// blocks that scrolled below the view. Smoothing depends on elapsed time,
// not frame count. The top settled block is never pruned.
func (st *Stack) Follow(s *Session, dt float64) {
	top := s.Current
	if top == nil {
		top = s.Top()
	}
	if top == nil {
		return
	}

	target := top.Y - st.viewHeight/2
	lerp := core.ClampF(1-math.Pow(st.params.DecayBase, dt), 0, 1) // Never away from or past the target
	s.CameraY += (target - s.CameraY) * lerp

	limit := st.viewHeight + st.params.PruneMargin
	last := len(s.Blocks) - 1
	kept := s.Blocks[:0]
	for i, b := range s.Blocks {
		screenY := b.Y - s.CameraY
		if i != last && screenY > limit {
			st.release(b)
			continue
		}
		st.surface.SetPosition(b.handle, b.X, screenY)
		kept = append(kept, b)
	}
	clear(s.Blocks[len(kept):])
	s.Blocks = kept

	if s.Current != nil {
		st.surface.SetPosition(s.Current.handle, s.Current.X, s.Current.Y-s.CameraY)
	}
}

// Release removes every visual the session owns.
func (st *Stack) Release(s *Session) {
	for _, b := range s.Blocks {
		st.release(b)
	}
	st.release(s.Current)
}

// RefreshLabel pushes the score to the surface label.
func (st *Stack) RefreshLabel(s *Session) {
	st.surface.SetLabel(strconv.Itoa(s.Score))
}

// SetViewHeight changes the visible height. The game width never changes.
func (st *Stack) SetViewHeight(h float64) {
	st.viewHeight = h
}

// ViewHeight returns the visible height in world units.
func (st *Stack) ViewHeight() float64 {
	return st.viewHeight
}
