package mobile

import (
	"fmt"

	"github.com/OpenRA/OpenRA-sub026/internal/activity"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

// blockedState tracks how a Move is dealing with an occupied next cell. It
// resets as soon as a step succeeds.
type blockedState struct {
	hasNudged          bool
	hasWaited          bool
	waitTicksRemaining int
}

// Move walks a unit cell by cell along a path it requests on its first
// tick. Remaining path cells are stored with the next cell last.
type Move struct {
	activity.Base
	mobile *Mobile

	destination    core.Cell
	hasDestination bool
	nearEnough     int
	ignoreActor    *world.Actor
	getPath        func() []core.Cell

	path          []core.Cell
	pathEvaluated bool
	jittered      bool
	part          *movePart
	blocked       blockedState

	uninterruptible bool
}

// MoveOption customises a Move.
type MoveOption func(*Move)

// IgnoringActor lets the move enter cells claimed by a.
func IgnoringActor(a *world.Actor) MoveOption {
	return func(m *Move) { m.ignoreActor = a }
}

// Uninterruptible makes the move refuse cancellation.
func Uninterruptible() MoveOption {
	return func(m *Move) { m.uninterruptible = true }
}

// MoveTo moves to dest, finishing early when blocked within nearEnough
// cells of it.
func (mob *Mobile) MoveTo(dest core.Cell, nearEnough int, opts ...MoveOption) *Move {
	m := &Move{
		mobile:         mob,
		destination:    dest,
		hasDestination: true,
		nearEnough:     nearEnough,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.getPath = func() []core.Cell {
		return mob.pathFinder().FindUnitPath(mob.toCell, dest, mob.self, m.ignoreActor)
	}
	return m
}

// ScriptedMoveTo moves exactly to dest and cannot be cancelled.
func (mob *Mobile) ScriptedMoveTo(dest core.Cell) *Move {
	return mob.MoveTo(dest, 0, Uninterruptible())
}

// MoveWithinRange moves until the unit is within rangeCells of target.
func (mob *Mobile) MoveWithinRange(target *world.Actor, rangeCells int, opts ...MoveOption) *Move {
	m := &Move{mobile: mob, nearEnough: rangeCells}
	for _, opt := range opts {
		opt(m)
	}
	m.getPath = func() []core.Cell {
		return mob.pathFinder().FindUnitPathToRange(mob.toCell, target.Location(), rangeCells, mob.self)
	}
	return m
}

// MoveAlong follows the path returned by getPath, which runs from the unit
// towards its goal.
func (mob *Mobile) MoveAlong(getPath func() []core.Cell, opts ...MoveOption) *Move {
	m := &Move{mobile: mob, getPath: getPath}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (mob *Mobile) pathFinder() world.PathFinder {
	return mob.self.World().PathFinder()
}

// Path returns the remaining cells in travel order.
func (m *Move) Path() []core.Cell {
	out := make([]core.Cell, len(m.path))
	for i, c := range m.path {
		out[len(m.path)-1-i] = c
	}
	return out
}

// Destination returns the cell the move is heading for, if known.
func (m *Move) Destination() (core.Cell, bool) {
	return m.destination, m.hasDestination
}

func (m *Move) Tick(self activity.Actor) activity.Result {
	mob := m.mobile
	if m.part != nil {
		m.tickPart()
		return activity.Continue()
	}

	if m.hasDestination && m.destination == mob.toCell {
		return activity.Done()
	}

	if !m.pathEvaluated {
		if !m.jittered {
			mob.rollPathDelay()
			m.jittered = true
		}
		if mob.ticksBeforePathing > 0 {
			mob.ticksBeforePathing--
			return activity.Continue()
		}
		m.path = m.evalPath()
		m.pathEvaluated = true
	}

	if len(m.path) == 0 {
		m.destination = mob.toCell
		m.hasDestination = true
		return activity.Done()
	}

	m.destination = m.path[0]
	m.hasDestination = true

	next, ok := m.popPath()
	if !ok {
		return activity.Continue()
	}

	firstFacing := core.GetFacing(next.Sub(mob.fromCell), mob.facing)
	if core.QuantizeFacing(firstFacing, mob.info.Facings) != core.QuantizeFacing(mob.facing, mob.info.Facings) {
		m.path = append(m.path, next)
		var turn activity.Activity = NewTurn(mob, firstFacing)
		if m.uninterruptible {
			turn = activity.Uninterruptible(turn)
		}
		return activity.Replace(turn, m)
	}

	from := mob.fromCell
	mob.SetLocation(from, next)
	mob.moving = true
	m.part = newMovePart(firstHalf,
		core.CenterOfCell(from), core.BetweenCells(from, next),
		mob.facing, mob.facing, 0)
	m.tickPart()
	return activity.Continue()
}

// Cancel stops the move at the next cell centre. Uninterruptible moves
// refuse.
func (m *Move) Cancel(self activity.Actor) bool {
	if m.uninterruptible {
		return false
	}
	m.path = []core.Cell{}
	m.pathEvaluated = true
	return m.Base.Cancel(self)
}

func (m *Move) IsCanceled() bool {
	return !m.uninterruptible && m.Base.IsCanceled()
}

func (m *Move) String() string {
	if m.hasDestination {
		return fmt.Sprintf("Move%v", m.destination)
	}
	return "Move"
}

func (m *Move) tickPart() {
	mob := m.mobile
	p := m.part
	done, carry := p.advance(mob.MovementSpeedForCell(mob.toCell))
	mob.center = p.position()
	mob.facing = p.facing()
	if done {
		m.part = m.completePart(p, carry)
	}
}

// completePart returns the part that follows p, or nil when the unit has
// arrived at a cell centre.
func (m *Move) completePart(p *movePart, carry int) *movePart {
	mob := m.mobile
	switch p.phase {
	case firstHalf:
		from, to := mob.fromCell, mob.toCell
		if next, ok := m.popPath(); ok {
			if next.Sub(to) != to.Sub(from) {
				np := newMovePart(firstHalf,
					core.BetweenCells(from, to), core.BetweenCells(to, next),
					mob.facing, core.NearestFacing(mob.facing, core.GetFacing(next.Sub(to), mob.facing)),
					carry)
				mob.SetLocation(to, next)
				mob.cellsTraveled++
				return np
			}
			m.path = append(m.path, next)
		}
		return newMovePart(secondHalf,
			core.BetweenCells(from, to), core.CenterOfCell(to),
			mob.facing, mob.facing, carry)

	default:
		mob.center = core.CenterOfCell(mob.toCell)
		mob.SetLocation(mob.toCell, mob.toCell)
		mob.finishedMoving()
		return nil
	}
}

// popPath removes and returns the next path cell if the unit can enter it.
// When it cannot, the blocker is nudged once, the unit waits, and after the
// wait a new path is requested.
func (m *Move) popPath() (core.Cell, bool) {
	if len(m.path) == 0 {
		return core.Cell{}, false
	}

	mob := m.mobile
	next := m.path[len(m.path)-1]
	if !mob.CanEnterCell(next, m.ignoreActor, true) {
		if m.hasDestination && mob.toCell.Sub(m.destination).LengthSquared() <= m.nearEnough*m.nearEnough {
			m.path = m.path[:0]
			return core.Cell{}, false
		}

		if !m.blocked.hasNudged {
			m.nudgeBlocker(next)
			m.blocked.hasNudged = true
		}

		if !m.blocked.hasWaited {
			info := mob.info
			m.blocked.waitTicksRemaining = info.WaitAverage +
				mob.self.World().SharedRandom.NextRange(-info.WaitSpread, info.WaitSpread)
			m.blocked.hasWaited = true
		}

		m.blocked.waitTicksRemaining--
		if m.blocked.waitTicksRemaining >= 0 {
			return core.Cell{}, false
		}

		// A pending order's path delay also holds back the re-route.
		if mob.ticksBeforePathing > 0 {
			mob.ticksBeforePathing--
			return core.Cell{}, false
		}

		mob.RemoveInfluence()
		newPath := m.evalPath()
		mob.AddInfluence()
		mob.self.World().Logger().Debug("repath", "actor", mob.self.ID(), "blocked", next, "len", len(newPath))

		if len(newPath) != 0 {
			m.path = newPath
		}
		m.blocked.hasWaited = false
		return core.Cell{}, false
	}

	m.blocked = blockedState{}
	m.path = m.path[:len(m.path)-1]
	return next, true
}

// evalPath requests a path and stores it next-cell-last, dropping the cell
// the unit is on and everything before it.
func (m *Move) evalPath() []core.Cell {
	mob := m.mobile
	raw := m.getPath()
	path := make([]core.Cell, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == mob.toCell {
			break
		}
		path = append(path, raw[i])
	}

	mob.pathHash = hashPath(path)
	mob.self.World().Logger().Debug("eval path", "actor", mob.self.ID(), "hash", mob.pathHash, "len", len(path))
	m.sanityCheckPath(path)
	return path
}

func (m *Move) sanityCheckPath(path []core.Cell) {
	if !sanityChecks || len(path) == 0 {
		return
	}
	if d := path[len(path)-1].Sub(m.mobile.toCell); d.LengthSquared() > 2 {
		panic(fmt.Sprintf("mobile: path for %v starts at %v, not adjacent to %v",
			m.mobile.self, path[len(path)-1], m.mobile.toCell))
	}
}

func (m *Move) nudgeBlocker(cell core.Cell) {
	self := m.mobile.self
	for _, blocker := range self.World().ActorMap.ActorsAt(cell) {
		if blocker == self || blocker == m.ignoreActor {
			continue
		}
		self.World().Logger().Debug("nudge blocker", "actor", self.ID(), "blocker", blocker.ID(), "cell", cell)
		if mover := blocker.Mover(); mover != nil {
			mover.OnNudge(blocker, self, false)
		}
		return
	}
}

func hashPath(path []core.Cell) uint32 {
	var h uint32
	for i, c := range path {
		h += uint32(i+1) * (uint32(c.X)*1000003 ^ uint32(c.Y)) //#nosec G115 -- hash computation
	}
	return h
}
