package world

import (
	"fmt"

	"github.com/OpenRA/OpenRA-sub026/internal/activity"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// Mover is the movement capability a mobile actor carries.
type Mover interface {
	Location() core.Cell
	CenterPosition() core.PxPos
	Facing() int
	IsMoving() bool
	OccupiedCells() []core.Cell
	CanEnterCell(c core.Cell, ignore *Actor, checkTransient bool) bool
	MovementCostForCell(c core.Cell) int
	// OnNudge asks the actor to step aside for nudger.
	OnNudge(self, nudger *Actor, force bool)
	// PathHash identifies the most recently evaluated path.
	PathHash() uint32
}

// Actor is a simulated entity with its own activity queue.
type Actor struct {
	id    uint32
	Type  string
	Owner string

	world      *World
	activities activity.Queue
	mover      Mover
	destroyed  bool
}

func (a *Actor) ID() uint32      { return a.id }
func (a *Actor) World() *World   { return a.world }
func (a *Actor) Mover() Mover    { return a.mover }
func (a *Actor) IsInWorld() bool { return !a.destroyed }

// SetMover attaches the actor's movement component.
func (a *Actor) SetMover(m Mover) {
	a.mover = m
}

// Location returns the actor's cell, or the zero cell if it cannot move.
func (a *Actor) Location() core.Cell {
	if a.mover == nil {
		return core.Cell{}
	}
	return a.mover.Location()
}

// CenterPosition returns the actor's pixel position.
func (a *Actor) CenterPosition() core.PxPos {
	if a.mover == nil {
		return core.CenterOfCell(core.Cell{})
	}
	return a.mover.CenterPosition()
}

// QueueActivity appends acts to the actor's queue.
func (a *Actor) QueueActivity(acts ...activity.Activity) {
	a.activities.Enqueue(acts...)
}

// CancelActivity asks the current activity to stop and drops what follows
// it. It returns false if the current activity refused.
func (a *Actor) CancelActivity() bool {
	return a.activities.Cancel(a)
}

func (a *Actor) IsIdle() bool { return a.activities.IsIdle() }

// CurrentActivity returns the running activity or nil.
func (a *Actor) CurrentActivity() activity.Activity {
	return a.activities.Current()
}

// Activities lists the queued activity names, current first.
func (a *Actor) Activities() []string {
	return a.activities.Names()
}

// Tick runs the current activity once.
func (a *Actor) Tick() {
	if a.destroyed {
		return
	}
	a.activities.Tick(a)
}

func (a *Actor) String() string {
	return fmt.Sprintf("#%d %s", a.id, a.Type)
}
