package scenario

import "github.com/OpenRA/OpenRA-sub026/internal/core"

// Snapshot captures the observable state of a run for determinism checks.
type Snapshot struct {
	Tick     int
	SyncHash uint64
	Draws    int
	Units    []UnitSnapshot
}

// UnitSnapshot is the state of one unit.
type UnitSnapshot struct {
	Name     string
	From, To core.Cell
	Center   core.PxPos
	Facing   int
	Idle     bool
}

// Snapshot returns the current state in unit ID order.
func (r *Runner) Snapshot() Snapshot {
	if r.world == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Tick:     r.world.WorldTick(),
		SyncHash: r.world.SyncHash(),
		Draws:    r.world.SharedRandom.TotalCount,
	}
	for _, a := range r.world.Actors() {
		mob, ok := r.units[r.names[a.ID()]]
		if !ok {
			continue
		}
		snap.Units = append(snap.Units, UnitSnapshot{
			Name:   r.names[a.ID()],
			From:   mob.FromCell(),
			To:     mob.ToCell(),
			Center: mob.CenterPosition(),
			Facing: mob.Facing(),
			Idle:   a.IsIdle(),
		})
	}
	return snap
}
