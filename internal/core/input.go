package core

// Action is a semantic viewer command, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // Space, P - toggle playback
	ActionStep           // N, Right - advance one tick while paused
	ActionFaster         // +, = - double playback rate
	ActionSlower         // - - halve playback rate
	ActionRestart        // R - restart with the same seed
	ActionReseed         // S - restart with a new seed
	ActionTable          // T - toggle the actor table
	ActionBack           // B, Escape - return to the picker
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionRestart:
		return "Restart"
	case ActionReseed:
		return "Reseed"
	case ActionTable:
		return "Table"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
