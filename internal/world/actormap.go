package world

import "github.com/OpenRA/OpenRA-sub026/internal/core"

// ActorMap tracks which actors claim each cell. Occupants of a cell are kept
// in the order they arrived so lookups are deterministic.
type ActorMap struct {
	influence map[core.Cell][]*Actor
}

func NewActorMap() *ActorMap {
	return &ActorMap{influence: make(map[core.Cell][]*Actor)}
}

// Add records that a claims every cell in cells.
func (am *ActorMap) Add(a *Actor, cells ...core.Cell) {
	for _, c := range cells {
		occupants := am.influence[c]
		if containsActor(occupants, a) {
			continue
		}
		am.influence[c] = append(occupants, a)
	}
}

// Remove drops a's claim on every cell in cells.
func (am *ActorMap) Remove(a *Actor, cells ...core.Cell) {
	for _, c := range cells {
		occupants := am.influence[c]
		for i, o := range occupants {
			if o == a {
				occupants = append(occupants[:i:i], occupants[i+1:]...)
				break
			}
		}
		if len(occupants) == 0 {
			delete(am.influence, c)
		} else {
			am.influence[c] = occupants
		}
	}
}

// ActorsAt returns the actors claiming c in arrival order.
func (am *ActorMap) ActorsAt(c core.Cell) []*Actor {
	return am.influence[c]
}

// IsOccupied reports whether any actor other than ignore claims c.
func (am *ActorMap) IsOccupied(c core.Cell, ignore *Actor) bool {
	for _, o := range am.influence[c] {
		if o != ignore {
			return true
		}
	}
	return false
}

func containsActor(list []*Actor, a *Actor) bool {
	for _, o := range list {
		if o == a {
			return true
		}
	}
	return false
}
