// Package registry provides a global registry of runnable simulations.
// Built-in scenarios register themselves in init() functions so the CLI,
// the viewer and the SSH server can list and start them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// Simulation is a deterministic, tick-driven simulation the platform can
// run, render and inspect. It has no terminal dependencies.
type Simulation interface {
	// ID returns a unique identifier (e.g. "corridor").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary.
	Description() string

	// Reset (re)builds the simulation from scratch with cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step() core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.SimState
}

// Inspector is implemented by simulations that can list their actors.
type Inspector interface {
	Actors() []core.ActorStatus
}

// Info describes a registered simulation.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh simulation instance.
type Factory func() Simulation

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a simulation factory. Panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}

	sim := f()
	factories[id] = f
	infos[id] = Info{ID: id, Title: sim.Title(), Description: sim.Description()}
}

// List returns all registered simulations sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a registered simulation.
func Create(id string) (Simulation, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown simulation %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
