package game

// rngSeed is the deterministic initial RNG state for every session.
const rngSeed uint32 = 0xDEADBEEF

// nextRand advances a 32-bit xorshift state and returns the new value.
func nextRand(state *uint32) uint32 {
	x := *state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	*state = x
	return x
}
