// Package world owns the simulation state: the terrain map, the actors and
// their cell influence, the shared random stream and the tick loop.
package world

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// PathFinder computes routes for mobile actors. Returned paths run from the
// start cell to the goal inclusive; an empty path means no route.
type PathFinder interface {
	FindUnitPath(from, to core.Cell, self, ignore *Actor) []core.Cell
	FindUnitPathToRange(from, target core.Cell, rangeCells int, self *Actor) []core.Cell
}

// Options configures a new World.
type Options struct {
	Seed   int64
	Logger *log.Logger
}

// World is one deterministic simulation instance.
type World struct {
	Map          *Map
	ActorMap     *ActorMap
	SharedRandom *core.SharedRandom

	logger        *log.Logger
	pathFinder    PathFinder
	actors        []*Actor
	nextID        uint32
	tick          int
	frameEndTasks []func(w *World)
}

// New creates an empty world on m.
func New(m *Map, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(os.Stderr, log.InfoLevel)
	}
	return &World{
		Map:          m,
		ActorMap:     NewActorMap(),
		SharedRandom: core.NewSharedRandom(opts.Seed),
		logger:       logger,
		nextID:       1,
	}
}

// NewLogger returns the simulation's structured logger.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rts",
		Level:           level,
	})
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func (w *World) Logger() *log.Logger { return w.logger }

// WorldTick returns the number of completed ticks.
func (w *World) WorldTick() int { return w.tick }

// SetPathFinder installs the route planner used by movement.
func (w *World) SetPathFinder(p PathFinder) {
	w.pathFinder = p
}

func (w *World) PathFinder() PathFinder { return w.pathFinder }

// CreateActor adds a new actor. IDs increase monotonically so the actor
// list is always in ID order.
func (w *World) CreateActor(typ, owner string) *Actor {
	a := &Actor{id: w.nextID, Type: typ, Owner: owner, world: w}
	w.nextID++
	w.actors = append(w.actors, a)
	return a
}

// RemoveActor takes a out of the world at the end of the current tick.
func (w *World) RemoveActor(a *Actor) {
	w.AddFrameEndTask(func(w *World) {
		if a.destroyed {
			return
		}
		a.destroyed = true
		a.activities.Clear()
		if a.mover != nil {
			w.ActorMap.Remove(a, a.mover.OccupiedCells()...)
		}
		for i, o := range w.actors {
			if o == a {
				w.actors = append(w.actors[:i], w.actors[i+1:]...)
				break
			}
		}
	})
}

// AddFrameEndTask runs fn after every actor has ticked.
func (w *World) AddFrameEndTask(fn func(w *World)) {
	w.frameEndTasks = append(w.frameEndTasks, fn)
}

// Actors returns the live actors in ID order.
func (w *World) Actors() []*Actor {
	out := make([]*Actor, len(w.actors))
	copy(out, w.actors)
	return out
}

// ActorByID returns the live actor with the given ID.
func (w *World) ActorByID(id uint32) (*Actor, bool) {
	for _, a := range w.actors {
		if a.id == id {
			return a, true
		}
	}
	return nil, false
}

// Tick advances the simulation by one tick. Actors run in ID order.
func (w *World) Tick() {
	for _, a := range w.Actors() {
		a.Tick()
	}
	w.tick++

	tasks := w.frameEndTasks
	w.frameEndTasks = nil
	for _, fn := range tasks {
		fn(w)
	}
}

// SyncHash folds every piece of state that lockstep peers must agree on.
func (w *World) SyncHash() uint64 {
	h := uint64(17)
	h = h*31 + uint64(w.tick)                      //#nosec G115 -- hash computation
	h = h*31 + uint64(w.SharedRandom.TotalCount)   //#nosec G115 -- hash computation
	h = h*31 + uint64(uint32(w.SharedRandom.Last)) //#nosec G115 -- hash computation
	for _, a := range w.actors {
		h = h*31 + uint64(a.id)
		if a.mover == nil {
			continue
		}
		loc := a.mover.Location()
		pos := a.mover.CenterPosition()
		h = h*31 + uint64(uint32(loc.X))            //#nosec G115 -- hash computation
		h = h*31 + uint64(uint32(loc.Y))            //#nosec G115 -- hash computation
		h = h*31 + uint64(uint32(pos.X))            //#nosec G115 -- hash computation
		h = h*31 + uint64(uint32(pos.Y))            //#nosec G115 -- hash computation
		h = h*31 + uint64(uint32(a.mover.Facing())) //#nosec G115 -- hash computation
		h = h*31 + uint64(a.mover.PathHash())
	}
	return h
}
