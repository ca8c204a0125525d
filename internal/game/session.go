package game

import "time"

// Session is the mutable state of one game, from InitGame to the next restart.
// A restart replaces the whole Session; nothing is carried over.
type Session struct {
	Playing bool
	Over    bool
	Score   int      // Settled blocks placed this session, base included
	Blocks  []*Block // Settled blocks, bottom to top; the bottom may be pruned
	Current *Block   // The moving block; nil once the game is over
	CameraY float64  // Vertical world-to-screen offset

	StartedAt time.Time
}

// Top returns the highest settled block, or nil for an empty stack.
func (s *Session) Top() *Block {
	if len(s.Blocks) == 0 {
		return nil
	}
	return s.Blocks[len(s.Blocks)-1]
}
