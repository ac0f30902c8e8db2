package mobile

import (
	"sort"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

const (
	// orderNearEnough is the acceptance radius of player move orders.
	orderNearEnough = 8
	// nearestCellSearchRange bounds NearestMoveableCell.
	nearestCellSearchRange = 10
)

// PerformMove issues a player-style move order to target. Unless queued, the
// current activity is cancelled first.
func (m *Mobile) PerformMove(target core.Cell, queued bool) *Move {
	cell := m.NearestMoveableCell(target)
	m.rollPathDelay()

	if !queued {
		m.self.CancelActivity()
	}
	mv := m.MoveTo(cell, orderNearEnough)
	mv.jittered = true
	m.self.QueueActivity(mv)
	return mv
}

// rollPathDelay draws the number of ticks before the next path request.
func (m *Mobile) rollPathDelay() {
	rnd := m.self.World().SharedRandom
	m.ticksBeforePathing = m.info.PathDelayAverage +
		rnd.NextRange(-m.info.PathDelaySpread, m.info.PathDelaySpread)
}

// Stop cancels the unit's current activity.
func (m *Mobile) Stop() bool {
	return m.self.CancelActivity()
}

// Scatter makes the unit step aside to a random free neighbour.
func (m *Mobile) Scatter() {
	m.OnNudge(m.self, m.self, true)
}

// NearestMoveableCell returns target if the unit can stand there, otherwise
// the closest enterable cell within a fixed radius, or target if none is.
func (m *Mobile) NearestMoveableCell(target core.Cell) core.Cell {
	if m.CanEnterCell(target, nil, true) {
		return target
	}
	for _, c := range cellsInRange(target, nearestCellSearchRange) {
		if m.CanEnterCell(c, nil, true) {
			return c
		}
	}
	return target
}

// cellsInRange lists the cells within r of center, nearest first, centre
// excluded. Ties are ordered by row then column.
func cellsInRange(center core.Cell, r int) []core.Cell {
	var out []core.Cell
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := core.C(dx, dy)
			if d.LengthSquared() == 0 || d.LengthSquared() > r*r {
				continue
			}
			out = append(out, center.Add(d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sub(center).LengthSquared() < out[j].Sub(center).LengthSquared()
	})
	return out
}
