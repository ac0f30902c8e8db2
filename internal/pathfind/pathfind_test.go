package pathfind

import (
	"reflect"
	"testing"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

// gridMover treats "rock" as impassable and "rough" as double cost.
type gridMover struct {
	self *world.Actor
	at   core.Cell
}

func (g *gridMover) Location() core.Cell                           { return g.at }
func (g *gridMover) CenterPosition() core.PxPos                    { return core.CenterOfCell(g.at) }
func (g *gridMover) Facing() int                                   { return 0 }
func (g *gridMover) IsMoving() bool                                { return false }
func (g *gridMover) OccupiedCells() []core.Cell                    { return []core.Cell{g.at} }
func (g *gridMover) PathHash() uint32                              { return 0 }
func (g *gridMover) OnNudge(self, nudger *world.Actor, force bool) {}

func (g *gridMover) CanEnterCell(c core.Cell, ignore *world.Actor, checkTransient bool) bool {
	w := g.self.World()
	if w.Map.TerrainAt(c) == "rock" {
		return false
	}
	if !checkTransient {
		return true
	}
	for _, o := range w.ActorMap.ActorsAt(c) {
		if o != g.self && o != ignore {
			return false
		}
	}
	return true
}

func (g *gridMover) MovementCostForCell(c core.Cell) int {
	if g.self.World().Map.TerrainAt(c) == "rough" {
		return 2 * CellCost
	}
	return CellCost
}

func setup(t *testing.T, rows ...string) (*world.World, *world.Actor, *PathFinder) {
	t.Helper()
	m, err := world.ParseLayout(rows, map[rune]string{'.': "clear", '#': "rock", ':': "rough"}, '.')
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	w := world.New(m, world.Options{Logger: world.DiscardLogger()})
	a := w.CreateActor("unit", "p1")
	a.SetMover(&gridMover{self: a})
	return w, a, New(w)
}

func TestStraightPath(t *testing.T) {
	_, a, pf := setup(t, ".....", ".....")
	path := pf.FindUnitPath(core.C(0, 0), core.C(3, 0), a, nil)

	expected := []core.Cell{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0)}
	if !reflect.DeepEqual(path, expected) {
		t.Errorf("path = %v, expected %v", path, expected)
	}
}

func TestPathAroundWall(t *testing.T) {
	_, a, pf := setup(t,
		"..#..",
		"..#..",
		".....",
	)
	path := pf.FindUnitPath(core.C(0, 0), core.C(4, 0), a, nil)
	if len(path) == 0 {
		t.Fatal("no path found")
	}
	assertContiguous(t, path)
	for _, c := range path {
		if c.X == 2 && c.Y < 2 {
			t.Errorf("path crosses wall at %v", c)
		}
	}
	if path[len(path)-1] != core.C(4, 0) {
		t.Errorf("path ends at %v", path[len(path)-1])
	}
}

func TestNoPath(t *testing.T) {
	_, a, pf := setup(t,
		"..#..",
		"..#..",
		"..#..",
	)
	if path := pf.FindUnitPath(core.C(0, 0), core.C(4, 0), a, nil); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestPathAvoidsOtherActors(t *testing.T) {
	w, a, pf := setup(t, ".....", ".....", ".....")
	blocker := w.CreateActor("unit", "p2")
	w.ActorMap.Add(blocker, core.C(2, 0))

	path := pf.FindUnitPath(core.C(0, 0), core.C(4, 0), a, nil)
	assertContiguous(t, path)
	for _, c := range path {
		if c == core.C(2, 0) {
			t.Errorf("path goes through occupied cell: %v", path)
		}
	}
}

func TestPathPrefersCheapTerrain(t *testing.T) {
	_, a, pf := setup(t,
		".:::.",
		".....",
	)
	path := pf.FindUnitPath(core.C(0, 0), core.C(4, 0), a, nil)
	for _, c := range path {
		if c.Y == 0 && c.X > 0 && c.X < 4 {
			t.Errorf("path crosses rough terrain at %v: %v", c, path)
		}
	}
}

func TestPathToRange(t *testing.T) {
	_, a, pf := setup(t, "........", "........")
	path := pf.FindUnitPathToRange(core.C(0, 0), core.C(7, 0), 2, a)
	if len(path) == 0 {
		t.Fatal("no path found")
	}
	end := path[len(path)-1]
	if d := end.Sub(core.C(7, 0)).LengthSquared(); d > 4 {
		t.Errorf("path ends at %v, outside range", end)
	}
	if end != core.C(5, 0) {
		t.Errorf("path ends at %v, expected nearest in-range cell (5,0)", end)
	}
}

func TestPathAlreadyAtGoal(t *testing.T) {
	_, a, pf := setup(t, "...")
	path := pf.FindUnitPath(core.C(1, 0), core.C(1, 0), a, nil)
	if !reflect.DeepEqual(path, []core.Cell{core.C(1, 0)}) {
		t.Errorf("path = %v, expected [(1,0)]", path)
	}
}

func TestPathIsDeterministic(t *testing.T) {
	_, a, pf := setup(t, "......", "......", "......", "......")
	first := pf.FindUnitPath(core.C(0, 0), core.C(5, 3), a, nil)
	for i := 0; i < 10; i++ {
		if again := pf.FindUnitPath(core.C(0, 0), core.C(5, 3), a, nil); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func assertContiguous(t *testing.T, path []core.Cell) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		if !path[i-1].IsAdjacent(path[i]) {
			t.Fatalf("path not contiguous at %d: %v", i, path)
		}
	}
}
