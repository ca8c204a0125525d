package core

// Action represents a semantic game action, abstracted from physical key presses
// and pointer events. Several physical inputs may map to the same action.
type Action int

const (
	ActionNone        Action = iota
	ActionCommit             // Space, Enter, mouse click - drop the block or restart after game over
	ActionToggleBoard        // L, Tab - open/close the leaderboard drawer
	ActionBack               // Esc - close the drawer or cancel the name prompt
	ActionHelp               // ? - toggle full help
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCommit:
		return "Commit"
	case ActionToggleBoard:
		return "ToggleBoard"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
