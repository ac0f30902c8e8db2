package core

// Facings are 8-bit angles: 0 is north, 64 west, 128 south and 192 east.
// Values are always kept in [0, 255].

// facingVectors are the 32 reference directions, one per 8 facing units.
var facingVectors = [32]PxPos{
	{0, -1331}, {-199, -1305}, {-391, -1229}, {-568, -1106},
	{-724, -941}, {-851, -739}, {-946, -509}, {-1004, -259},
	{-1024, 0}, {-1004, 259}, {-946, 509}, {-851, 739},
	{-724, 941}, {-568, 1106}, {-391, 1229}, {-199, 1305},
	{0, 1331}, {199, 1305}, {391, 1229}, {568, 1106},
	{724, 941}, {851, 739}, {946, 509}, {1004, 259},
	{1024, 0}, {1004, -259}, {946, -509}, {851, -739},
	{724, -941}, {568, -1106}, {391, -1229}, {199, -1305},
}

// GetFacing returns the facing of direction d, or current when d is zero.
func GetFacing(d Cell, current int) int {
	if d.X == 0 && d.Y == 0 {
		return current
	}
	best, bestDot := 0, 0
	for i, v := range facingVectors {
		dot := v.X*d.X + v.Y*d.Y
		if i == 0 || dot > bestDot {
			best, bestDot = i, dot
		}
	}
	return best * 8
}

// NearestFacing returns desired expressed relative to current so that
// interpolating from current takes the shorter way round. The result may lie
// outside [0, 255] and must be masked after interpolation.
func NearestFacing(current, desired int) int {
	turn := desired - current
	if turn > 128 {
		turn -= 256
	}
	if turn < -128 {
		turn += 256
	}
	return current + turn
}

// QuantizeFacing maps a facing onto one of numFacings evenly spaced buckets.
func QuantizeFacing(facing, numFacings int) int {
	if numFacings <= 0 {
		return facing & 0xff
	}
	if numFacings > 256 {
		numFacings = 256
	}
	step := 256 / numFacings
	a := (facing + step/2) & 0xff
	return a / step
}

// TickFacing rotates facing towards desired by at most rot units.
func TickFacing(facing, desired, rot int) int {
	leftTurn := (facing - desired) & 0xff
	rightTurn := (desired - facing) & 0xff
	if Min(leftTurn, rightTurn) < rot {
		return desired & 0xff
	}
	if rightTurn < leftTurn {
		return (facing + rot) & 0xff
	}
	return (facing - rot) & 0xff
}

// NormalizeFacing wraps f into [0, 255].
func NormalizeFacing(f int) int {
	return f & 0xff
}
