package core

// RuntimeConfig is passed to a simulation when it is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Viewport width in characters
	ScreenH  int   // Viewport height in characters
	TickRate int   // Simulation ticks per second when played back live
	Seed     int64 // Seed for the shared random stream
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 25,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SimState is the coarse status of a running simulation.
type SimState struct {
	Tick     int    // Ticks simulated so far
	Actors   int    // Live actors
	Idle     int    // Actors with an empty activity queue
	SyncHash uint64 // World hash after the last tick
	Finished bool   // The scenario has reached its end condition
}

// StepResult is returned by a simulation after each tick.
type StepResult struct {
	State SimState
}

// ActorStatus is a display summary of one simulated actor.
type ActorStatus struct {
	ID       uint32
	Name     string
	Type     string
	Owner    string
	Cell     Cell
	Facing   int
	Moving   bool
	Activity string // Current activity, empty when idle
	Queued   int    // Activities queued behind the current one
}
