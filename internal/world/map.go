package world

import (
	"errors"
	"fmt"

	"github.com/OpenRA/OpenRA-sub026/internal/core"
)

var (
	// ErrOutOfBounds is returned when a cell lies outside the map.
	ErrOutOfBounds = errors.New("world: cell out of bounds")
	// ErrCellOccupied is returned when an actor cannot be placed on a cell.
	ErrCellOccupied = errors.New("world: cell not enterable")
)

// Map is the terrain grid. Every cell carries a terrain type name that
// movement rules look up.
type Map struct {
	Title  string
	width  int
	height int
	cells  []string
}

// NewMap creates a width x height map filled with terrain.
func NewMap(width, height int, terrain string) *Map {
	m := &Map{width: width, height: height, cells: make([]string, width*height)}
	for i := range m.cells {
		m.cells[i] = terrain
	}
	return m
}

// ParseLayout builds a map from rows of symbols. legend maps each symbol to
// a terrain type name; rows shorter than the widest are padded with the
// terrain of pad.
func ParseLayout(rows []string, legend map[rune]string, pad rune) (*Map, error) {
	if len(rows) == 0 {
		return nil, errors.New("world: empty layout")
	}
	width := 0
	for _, row := range rows {
		width = core.Max(width, len([]rune(row)))
	}
	padTerrain, ok := legend[pad]
	if !ok {
		return nil, fmt.Errorf("world: pad symbol %q not in legend", pad)
	}

	m := NewMap(width, len(rows), padTerrain)
	for y, row := range rows {
		for x, r := range []rune(row) {
			name, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("world: unknown terrain symbol %q at %v", r, core.C(x, y))
			}
			m.cells[y*width+x] = name
		}
	}
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// Contains reports whether c lies inside the map.
func (m *Map) Contains(c core.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

// TerrainAt returns the terrain type of c, or "" outside the map.
func (m *Map) TerrainAt(c core.Cell) string {
	if !m.Contains(c) {
		return ""
	}
	return m.cells[c.Y*m.width+c.X]
}

// SetTerrain changes the terrain type of c.
func (m *Map) SetTerrain(c core.Cell, terrain string) error {
	if !m.Contains(c) {
		return fmt.Errorf("set terrain %v: %w", c, ErrOutOfBounds)
	}
	m.cells[c.Y*m.width+c.X] = terrain
	return nil
}
