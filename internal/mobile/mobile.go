// Package mobile implements ground movement: the Mobile component that ties
// an actor to map cells, and the Move and Turn activities that drive it.
package mobile

import (
	"fmt"

	"github.com/OpenRA/OpenRA-sub026/internal/config"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

// SpeedModifier scales movement speed by a percentage.
type SpeedModifier interface {
	SpeedModifier() int
}

// Mobile is the movement state of a ground unit. While a unit is between
// cells it claims both fromCell and toCell.
type Mobile struct {
	self *world.Actor
	info config.UnitInfo

	fromCell core.Cell
	toCell   core.Cell
	center   core.PxPos
	facing   int
	moving   bool

	pathHash           uint32
	ticksBeforePathing int
	cellsTraveled      int
	modifiers          []SpeedModifier
}

// New attaches a Mobile to self at cell. The cell must be on the map and
// enterable.
func New(self *world.Actor, info config.UnitInfo, cell core.Cell, facing int) (*Mobile, error) {
	m := &Mobile{
		self:     self,
		info:     info,
		fromCell: cell,
		toCell:   cell,
		center:   core.CenterOfCell(cell),
		facing:   core.NormalizeFacing(facing),
	}
	w := self.World()
	if !w.Map.Contains(cell) {
		return nil, fmt.Errorf("place %v at %v: %w", self, cell, world.ErrOutOfBounds)
	}
	if !m.CanEnterCell(cell, nil, true) {
		return nil, fmt.Errorf("place %v at %v: %w", self, cell, world.ErrCellOccupied)
	}
	self.SetMover(m)
	m.AddInfluence()
	return m, nil
}

func (m *Mobile) Actor() *world.Actor        { return m.self }
func (m *Mobile) Info() config.UnitInfo      { return m.info }
func (m *Mobile) Location() core.Cell        { return m.toCell }
func (m *Mobile) FromCell() core.Cell        { return m.fromCell }
func (m *Mobile) ToCell() core.Cell          { return m.toCell }
func (m *Mobile) CenterPosition() core.PxPos { return m.center }
func (m *Mobile) Facing() int                { return m.facing }
func (m *Mobile) IsMoving() bool             { return m.moving }
func (m *Mobile) PathHash() uint32           { return m.pathHash }

// CellsTraveled counts completed cell-to-cell moves.
func (m *Mobile) CellsTraveled() int { return m.cellsTraveled }

// SetFacing sets the facing, wrapped into [0, 255].
func (m *Mobile) SetFacing(f int) {
	m.facing = core.NormalizeFacing(f)
}

// AddSpeedModifier registers a runtime speed modifier.
func (m *Mobile) AddSpeedModifier(mod SpeedModifier) {
	m.modifiers = append(m.modifiers, mod)
}

// OccupiedCells returns the cells the unit claims.
func (m *Mobile) OccupiedCells() []core.Cell {
	if m.fromCell == m.toCell {
		return []core.Cell{m.fromCell}
	}
	return []core.Cell{m.fromCell, m.toCell}
}

func (m *Mobile) AddInfluence() {
	m.self.World().ActorMap.Add(m.self, m.OccupiedCells()...)
}

func (m *Mobile) RemoveInfluence() {
	m.self.World().ActorMap.Remove(m.self, m.OccupiedCells()...)
}

// SetLocation moves the unit's cell claim to from and to.
func (m *Mobile) SetLocation(from, to core.Cell) {
	if m.fromCell == from && m.toCell == to {
		return
	}
	m.RemoveInfluence()
	m.fromCell = from
	m.toCell = to
	m.AddInfluence()
}

// CanEnterCell reports whether the unit may stand on c. With checkTransient
// set, cells claimed by other actors except ignore are refused.
func (m *Mobile) CanEnterCell(c core.Cell, ignore *world.Actor, checkTransient bool) bool {
	w := m.self.World()
	if !w.Map.Contains(c) {
		return false
	}
	if _, ok := m.terrainSpeed(c); !ok {
		return false
	}
	if !checkTransient {
		return true
	}
	for _, o := range w.ActorMap.ActorsAt(c) {
		if o != m.self && o != ignore {
			return false
		}
	}
	return true
}

// MovementCostForCell returns the path cost of entering c.
func (m *Mobile) MovementCostForCell(c core.Cell) int {
	ts, ok := m.terrainSpeed(c)
	if !ok {
		return 0
	}
	return ts.Cost
}

// MovementSpeedForCell returns the per-tick move fraction on c.
func (m *Mobile) MovementSpeedForCell(c core.Cell) int {
	ts, ok := m.terrainSpeed(c)
	if !ok {
		return 0
	}
	speed := m.info.Speed * ts.Speed / 100
	for _, pct := range m.info.SpeedModifiers {
		speed = speed * pct / 100
	}
	for _, mod := range m.modifiers {
		speed = speed * mod.SpeedModifier() / 100
	}
	return speed
}

func (m *Mobile) terrainSpeed(c core.Cell) (config.TerrainSpeed, bool) {
	terrain := m.self.World().Map.TerrainAt(c)
	if terrain == "" {
		return config.TerrainSpeed{}, false
	}
	ts, ok := m.info.TerrainSpeeds[terrain]
	return ts, ok
}

// finishedMoving is called when a full cell-to-cell move completes.
func (m *Mobile) finishedMoving() {
	m.moving = false
	m.cellsTraveled++
}

// OnNudge moves the unit one cell out of the way of nudger. Busy units and
// units of another owner only yield when forced.
func (m *Mobile) OnNudge(self, nudger *world.Actor, force bool) {
	log := self.World().Logger()
	if !force && nudger.Owner != self.Owner {
		log.Debug("nudge refused", "actor", self.ID(), "nudger", nudger.ID(), "reason", "owner")
		return
	}
	if !force && !self.IsIdle() {
		log.Debug("nudge refused", "actor", self.ID(), "nudger", nudger.ID(), "reason", "busy")
		return
	}

	var avail, fallback []core.Cell
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := m.toCell.Add(core.C(dx, dy))
			switch {
			case m.CanEnterCell(p, nil, true) && p != m.toCell:
				avail = append(avail, p)
			case p != nudger.Location() && p != m.toCell:
				fallback = append(fallback, p)
			}
		}
	}

	candidates := avail
	if len(candidates) == 0 {
		candidates = fallback
	}
	if len(candidates) == 0 {
		log.Debug("nudge refused", "actor", self.ID(), "cell", m.toCell, "reason", "no room")
		return
	}

	moveTo := candidates[self.World().SharedRandom.NextN(len(candidates))]
	self.CancelActivity()
	self.QueueActivity(m.MoveTo(moveTo, 0))
	log.Debug("nudged", "actor", self.ID(), "from", m.toCell, "to", moveTo)
}
