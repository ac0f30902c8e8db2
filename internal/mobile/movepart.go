package mobile

import "github.com/OpenRA/OpenRA-sub026/internal/core"

// phase identifies which half of a cell transition a movePart covers.
type phase uint8

const (
	// firstHalf runs from a cell centre (or a previous midpoint) to the
	// midpoint towards the next cell.
	firstHalf phase = iota
	// secondHalf runs from a midpoint to the centre of the entered cell.
	secondHalf
)

func (p phase) String() string {
	if p == firstHalf {
		return "first-half"
	}
	return "second-half"
}

// movePart interpolates position and facing over one half-cell segment.
type movePart struct {
	phase      phase
	from, to   core.PxPos
	fromFacing int
	toFacing   int
	fraction   int
	total      int
}

func newMovePart(ph phase, from, to core.PxPos, fromFacing, toFacing, startingFraction int) *movePart {
	return &movePart{
		phase:      ph,
		from:       from,
		to:         to,
		fromFacing: fromFacing,
		toFacing:   toFacing,
		fraction:   startingFraction,
		total:      to.Sub(from).Scale(3).Length(),
	}
}

// advance adds speed to the fraction. It reports whether the part is
// complete and how much of the fraction overshot the end.
func (p *movePart) advance(speed int) (done bool, carry int) {
	p.fraction += speed
	if p.fraction < p.total {
		return false, 0
	}
	carry = p.fraction - p.total
	p.fraction = p.total
	return true, carry
}

func (p *movePart) position() core.PxPos {
	if p.total == 0 || p.fraction >= p.total {
		return p.to
	}
	return core.Lerp(p.from, p.to, p.fraction, p.total)
}

func (p *movePart) facing() int {
	if p.total == 0 || p.fraction >= p.total {
		return core.NormalizeFacing(p.toFacing)
	}
	return core.NormalizeFacing(p.fromFacing + (p.toFacing-p.fromFacing)*p.fraction/p.total)
}
