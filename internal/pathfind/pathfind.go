// Package pathfind plans cell routes for mobile actors with a deterministic
// A* search over the world map.
package pathfind

import (
	"container/heap"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
	"github.com/OpenRA/OpenRA-sub026/internal/world"
)

// CellCost is the cost of an orthogonal step over terrain of unit cost.
const CellCost = 100

// directions are expanded in this fixed order so ties resolve identically
// on every peer.
var directions = [8]core.Cell{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// Search describes one path query.
type Search struct {
	From core.Cell
	// IsGoal reports whether a cell ends the search.
	IsGoal func(c core.Cell) bool
	// Heuristic estimates the remaining cost from a cell.
	Heuristic func(c core.Cell) int
	// Self is the actor whose movement rules apply.
	Self *world.Actor
	// Ignore is an actor whose footprint does not block.
	Ignore *world.Actor
	// CheckForBlocked treats cells claimed by other actors as blocked.
	CheckForBlocked bool
}

// PathFinder answers path queries against a world.
type PathFinder struct {
	world *world.World
}

func New(w *world.World) *PathFinder {
	return &PathFinder{world: w}
}

// FindUnitPath returns a route from from to to, or nil if none exists.
// Cells claimed by ignore do not block.
func (p *PathFinder) FindUnitPath(from, to core.Cell, self, ignore *world.Actor) []core.Cell {
	return p.FindPath(Search{
		From:            from,
		IsGoal:          func(c core.Cell) bool { return c == to },
		Heuristic:       octile(to, 0),
		Self:            self,
		Ignore:          ignore,
		CheckForBlocked: true,
	})
}

// FindUnitPathToRange returns a route to the nearest cell within rangeCells
// of target, or nil if none exists.
func (p *PathFinder) FindUnitPathToRange(from, target core.Cell, rangeCells int, self *world.Actor) []core.Cell {
	r2 := rangeCells * rangeCells
	return p.FindPath(Search{
		From:            from,
		IsGoal:          func(c core.Cell) bool { return c.Sub(target).LengthSquared() <= r2 },
		Heuristic:       octile(target, rangeCells),
		Self:            self,
		CheckForBlocked: true,
	})
}

// FindPath runs s and returns the cells from s.From to the goal inclusive.
// A start cell that already satisfies the goal yields a single-cell path.
func (p *PathFinder) FindPath(s Search) []core.Cell {
	m := p.world.Map
	if !m.Contains(s.From) || s.IsGoal == nil {
		return nil
	}
	var mover world.Mover
	if s.Self != nil {
		mover = s.Self.Mover()
	}
	heuristic := s.Heuristic
	if heuristic == nil {
		heuristic = func(core.Cell) int { return 0 }
	}

	open := &nodeQueue{}
	heap.Init(open)
	best := map[core.Cell]int{s.From: 0}
	parent := make(map[core.Cell]core.Cell)
	closed := make(map[core.Cell]bool)
	seq := 0

	heap.Push(open, &node{cell: s.From, cost: 0, est: heuristic(s.From), seq: seq})
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true

		if s.IsGoal(cur.cell) {
			return reconstruct(parent, s.From, cur.cell)
		}

		for _, d := range directions {
			next := cur.cell.Add(d)
			if !m.Contains(next) || closed[next] {
				continue
			}
			step := CellCost
			if mover != nil {
				if !mover.CanEnterCell(next, s.Ignore, s.CheckForBlocked) {
					continue
				}
				step = mover.MovementCostForCell(next)
			}
			if d.X != 0 && d.Y != 0 {
				step = step * 141 / 100
			}

			cost := cur.cost + step
			if old, seen := best[next]; seen && old <= cost {
				continue
			}
			best[next] = cost
			parent[next] = cur.cell
			seq++
			heap.Push(open, &node{cell: next, cost: cost, est: cost + heuristic(next), seq: seq})
		}
	}
	return nil
}

func reconstruct(parent map[core.Cell]core.Cell, from, goal core.Cell) []core.Cell {
	path := []core.Cell{goal}
	for c := goal; c != from; {
		c = parent[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// octile estimates the cost to come within slack cells of target.
func octile(target core.Cell, slack int) func(core.Cell) int {
	return func(c core.Cell) int {
		dx := core.Abs(c.X - target.X)
		dy := core.Abs(c.Y - target.Y)
		diag := core.Min(dx, dy)
		straight := core.Max(dx, dy) - diag
		h := diag*CellCost*141/100 + straight*CellCost
		h -= slack * CellCost * 141 / 100
		return core.Max(h, 0)
	}
}

type node struct {
	cell core.Cell
	cost int
	est  int
	seq  int
}

type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].est != q[j].est {
		return q[i].est < q[j].est
	}
	if q[i].cost != q[j].cost {
		return q[i].cost > q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(*node))
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
