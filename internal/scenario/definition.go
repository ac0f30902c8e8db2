// Package scenario loads scenario files (a map layout, units and timed
// orders) and runs them on a world.
package scenario

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

// ErrNotFound is returned when no scenario has the requested ID.
var ErrNotFound = errors.New("scenario: not found")

// Order kinds.
const (
	OrderMove         = "move"          // player move order to the nearest free cell
	OrderMoveNear     = "move_near"     // move with an explicit acceptance radius
	OrderMoveWithin   = "move_within"   // move within range of another unit
	OrderScriptedMove = "scripted_move" // exact move that refuses cancellation
	OrderStop         = "stop"
	OrderWait         = "wait"
	OrderWaitIdle     = "wait_idle" // wait until another unit is idle
	OrderScatter      = "scatter"
)

// Definition is a parsed scenario file.
type Definition struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Seed        int64      `yaml:"seed"`
	Ticks       int        `yaml:"ticks"`
	Pad         string     `yaml:"pad"`
	Layout      []string   `yaml:"layout"`
	Units       []UnitDef  `yaml:"units"`
	Orders      []OrderDef `yaml:"orders"`

	FilePath string `yaml:"-"`
}

// UnitDef places one unit.
type UnitDef struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Owner  string `yaml:"owner"`
	At     Point  `yaml:"at"`
	Facing *int   `yaml:"facing"`
}

// OrderDef is an order issued to a unit at an absolute tick.
type OrderDef struct {
	Tick   int    `yaml:"tick"`
	Unit   string `yaml:"unit"`
	Kind   string `yaml:"kind"`
	Target *Point `yaml:"target"`
	Near   int    `yaml:"near"`
	Of     string `yaml:"of"`
	Range  int    `yaml:"range"`
	Ticks  int    `yaml:"ticks"`
	Queued bool   `yaml:"queued"`
}

// Point is a cell written as [x, y].
type Point core.Cell

func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	var xy []int
	if err := node.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: cell must be [x, y]", node.Line)
	}
	*p = Point{X: xy[0], Y: xy[1]}
	return nil
}

func (p Point) Cell() core.Cell { return core.Cell(p) }

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if def.Pad == "" {
		def.Pad = "."
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks references between units and orders.
func (d Definition) Validate() error {
	if d.ID == "" {
		return errors.New("scenario: missing id")
	}
	if len(d.Layout) == 0 {
		return fmt.Errorf("scenario %s: empty layout", d.ID)
	}

	names := make(map[string]bool, len(d.Units))
	for i, u := range d.Units {
		if u.Name == "" {
			return fmt.Errorf("scenario %s: unit %d has no name", d.ID, i)
		}
		if names[u.Name] {
			return fmt.Errorf("scenario %s: duplicate unit %q", d.ID, u.Name)
		}
		if u.Type == "" {
			return fmt.Errorf("scenario %s: unit %q has no type", d.ID, u.Name)
		}
		names[u.Name] = true
	}

	for i, o := range d.Orders {
		if !names[o.Unit] {
			return fmt.Errorf("scenario %s: order %d targets unknown unit %q", d.ID, i, o.Unit)
		}
		if o.Tick < 0 {
			return fmt.Errorf("scenario %s: order %d has negative tick", d.ID, i)
		}
		switch o.Kind {
		case OrderMove, OrderMoveNear, OrderScriptedMove:
			if o.Target == nil {
				return fmt.Errorf("scenario %s: %s order %d needs a target", d.ID, o.Kind, i)
			}
		case OrderMoveWithin, OrderWaitIdle:
			if !names[o.Of] {
				return fmt.Errorf("scenario %s: %s order %d references unknown unit %q", d.ID, o.Kind, i, o.Of)
			}
		case OrderWait:
			if o.Ticks <= 0 {
				return fmt.Errorf("scenario %s: wait order %d needs ticks", d.ID, i)
			}
		case OrderStop, OrderScatter:
		default:
			return fmt.Errorf("scenario %s: order %d has unknown kind %q", d.ID, i, o.Kind)
		}
	}
	return nil
}
