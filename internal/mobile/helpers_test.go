package mobile

import (
	"testing"

	"github.com/OpenRA/OpenRA-sub026/internal/config"
	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/pathfind"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

const (
	east  = 192
	north = 0
)

func newTestWorld(t *testing.T, seed int64, rows ...string) *world.World {
	t.Helper()
	m, err := world.ParseLayout(rows, map[rune]string{'.': "clear", '#': "rock", ':': "rough"}, '.')
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	w := world.New(m, world.Options{Seed: seed, Logger: world.DiscardLogger()})
	w.SetPathFinder(pathfind.New(w))
	return w
}

func testInfo(speed int) config.UnitInfo {
	info := config.DefaultUnitInfo()
	info.Speed = speed
	info.ROT = 8
	info.PathDelayAverage = 0
	info.PathDelaySpread = 0
	info.TerrainSpeeds = map[string]config.TerrainSpeed{
		"clear": {Speed: 100, Cost: 100},
		"rough": {Speed: 50, Cost: 200},
	}
	return info
}

func addUnit(t *testing.T, w *world.World, owner string, cell core.Cell, facing int, info config.UnitInfo) *Mobile {
	t.Helper()
	a := w.CreateActor("unit", owner)
	m, err := New(a, info, cell, facing)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

// addObstacle claims cell with an actor that has no movement.
func addObstacle(w *world.World, owner string, cell core.Cell) *world.Actor {
	a := w.CreateActor("wall", owner)
	w.ActorMap.Add(a, cell)
	return a
}

func tickUntilIdle(t *testing.T, w *world.World, a *world.Actor, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		w.Tick()
		if a.IsIdle() {
			return i
		}
	}
	t.Fatalf("%v still busy after %d ticks: %v", a, limit, a.Activities())
	return 0
}

// countingFinder wraps a PathFinder and counts requests.
type countingFinder struct {
	inner world.PathFinder
	calls int
}

func (c *countingFinder) FindUnitPath(from, to core.Cell, self, ignore *world.Actor) []core.Cell {
	c.calls++
	return c.inner.FindUnitPath(from, to, self, ignore)
}

func (c *countingFinder) FindUnitPathToRange(from, target core.Cell, r int, self *world.Actor) []core.Cell {
	c.calls++
	return c.inner.FindUnitPathToRange(from, target, r, self)
}
