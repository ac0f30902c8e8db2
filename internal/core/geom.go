// Package core holds the leaf primitives shared by the simulation and the
// viewer: cell and pixel coordinates, facings, the shared random stream and
// the character screen buffer. It has no third-party dependencies so the
// simulation packages stay pure and testable.
package core

import "fmt"

// CellSize is the width of one map cell in world pixels.
const CellSize = 24

// Cell is a discrete map coordinate.
type Cell struct {
	X, Y int
}

// C is shorthand for Cell{X: x, Y: y}.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

func (c Cell) Add(o Cell) Cell { return Cell{c.X + o.X, c.Y + o.Y} }
func (c Cell) Sub(o Cell) Cell { return Cell{c.X - o.X, c.Y - o.Y} }

// LengthSquared returns the squared length of c treated as a vector.
func (c Cell) LengthSquared() int {
	return c.X*c.X + c.Y*c.Y
}

// IsAdjacent reports whether o is one of the eight neighbours of c.
func (c Cell) IsAdjacent(o Cell) bool {
	d := o.Sub(c).LengthSquared()
	return d == 1 || d == 2
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// PxPos is a continuous world position in pixels.
type PxPos struct {
	X, Y int
}

func (p PxPos) Add(o PxPos) PxPos { return PxPos{p.X + o.X, p.Y + o.Y} }
func (p PxPos) Sub(o PxPos) PxPos { return PxPos{p.X - o.X, p.Y - o.Y} }

// Scale multiplies both components by k.
func (p PxPos) Scale(k int) PxPos { return PxPos{p.X * k, p.Y * k} }

// Length returns the floored euclidean length of p.
func (p PxPos) Length() int {
	return ISqrt(p.X*p.X + p.Y*p.Y)
}

// ToCell returns the cell containing p.
func (p PxPos) ToCell() Cell {
	return Cell{floorDiv(p.X, CellSize), floorDiv(p.Y, CellSize)}
}

func (p PxPos) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// CenterOfCell returns the pixel centre of c.
func CenterOfCell(c Cell) PxPos {
	return PxPos{c.X*CellSize + CellSize/2, c.Y*CellSize + CellSize/2}
}

// BetweenCells returns the midpoint of the centres of a and b.
func BetweenCells(a, b Cell) PxPos {
	return Lerp(CenterOfCell(a), CenterOfCell(b), 1, 2)
}

// Lerp interpolates from a to b by mul/div using integer arithmetic.
// Lerp(a, b, d, d) is exactly b.
func Lerp(a, b PxPos, mul, div int) PxPos {
	return PxPos{
		a.X + (b.X-a.X)*mul/div,
		a.Y + (b.Y-a.Y)*mul/div,
	}
}

// ISqrt returns floor(sqrt(n)) for n >= 0 using integer Newton iteration.
func ISqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Rect is an axis-aligned rectangle in screen characters.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
