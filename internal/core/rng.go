package core

// Rand is a value-carried xorshift64* generator state. Game rules must be
// pure, so any randomness they need travels inside the game state itself:
// each draw returns the advanced generator along with the value, and the
// rules store the advanced generator back into the next state. Identical
// seeds always replay identical draw sequences.
type Rand uint64

// NewRand derives a non-zero generator state from a seed.
func NewRand(seed int64) Rand {
	// SplitMix64 scramble so nearby seeds diverge immediately.
	z := uint64(seed) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 0x9e3779b97f4a7c15
	}
	return Rand(z)
}

// Next advances the generator and returns the raw 64-bit draw.
func (r Rand) Next() (Rand, uint64) {
	x := uint64(r)
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	return Rand(x), x * 0x2545f4914f6cdd1d
}

// Float advances the generator and returns a draw in [0, 1).
func (r Rand) Float() (Rand, float64) {
	next, v := r.Next()
	return next, float64(v>>11) / (1 << 53)
}

// Intn advances the generator and returns a draw in [0, n).
// It panics if n is not positive.
func (r Rand) Intn(n int) (Rand, int) {
	if n <= 0 {
		panic("core: Intn requires a positive bound")
	}
	next, v := r.Next()
	return next, int(v % uint64(n))
}
