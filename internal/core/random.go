package core

// SharedRandom is the simulation's deterministic random stream: a 32-bit
// Mersenne Twister whose draws are identical for a given seed on every
// platform. Every simulation decision that needs randomness must draw from
// the world's SharedRandom so lockstep peers stay in sync.
type SharedRandom struct {
	mt    [624]uint32
	index int

	// Last is the most recent value returned by Next.
	Last int
	// TotalCount is the number of values drawn so far.
	TotalCount int
}

// NewSharedRandom seeds a new stream.
func NewSharedRandom(seed int64) *SharedRandom {
	r := &SharedRandom{}
	r.mt[0] = uint32(seed)
	for i := 1; i < len(r.mt); i++ {
		r.mt[i] = 1812433253*(r.mt[i-1]^(r.mt[i-1]>>30)) + uint32(i)
	}
	return r
}

// Next returns a value in [0, 2^31-1).
func (r *SharedRandom) Next() int {
	if r.index == 0 {
		r.generate()
	}

	y := r.mt[r.index]
	y ^= y >> 11
	y ^= (y << 7) & 2636928640
	y ^= (y << 15) & 4022730752
	y ^= y >> 18

	r.index = (r.index + 1) % len(r.mt)
	r.TotalCount++
	r.Last = int(y % 0x7fffffff)
	return r.Last
}

// NextRange returns a value in [low, high). Ranges narrower than two values
// return low without consuming a draw.
func (r *SharedRandom) NextRange(low, high int) int {
	diff := high - low
	if diff <= 1 {
		return low
	}
	return low + r.Next()%diff
}

// NextN returns a value in [0, high).
func (r *SharedRandom) NextN(high int) int {
	return r.NextRange(0, high)
}

// NextFloat returns a value in [0, 1].
func (r *SharedRandom) NextFloat() float64 {
	return float64(r.Next()) / float64(0x7fffffff)
}

func (r *SharedRandom) generate() {
	for i := range r.mt {
		y := (r.mt[i] & 0x80000000) | (r.mt[(i+1)%len(r.mt)] & 0x7fffffff)
		r.mt[i] = r.mt[(i+397)%len(r.mt)] ^ (y >> 1)
		if y&1 == 1 {
			r.mt[i] ^= 2567483615
		}
	}
}
