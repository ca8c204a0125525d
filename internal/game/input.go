package game

import "github.com/vovakirdan/stack-top/internal/core"

// Router turns the single player action into a game transition:
// after a game over it restarts, otherwise it drops the moving block.
type Router struct {
	loop *Loop
}

// NewRouter creates a router for the given loop.
func NewRouter(l *Loop) *Router {
	return &Router{loop: l}
}

// Handle applies an action. It reports whether the action was consumed;
// actions other than ActionCommit are left to the caller.
func (r *Router) Handle(a core.Action) bool {
	if a != core.ActionCommit {
		return false
	}

	if r.loop.State() == StateGameOver {
		r.loop.InitGame()
	} else {
		r.loop.Commit()
	}
	return true
}
