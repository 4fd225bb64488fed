package morton

// step is one stage of spreading a value: OR it with itself shifted left by
// lshift, then keep only the bits in mask. Gathering walks the steps in
// reverse and shifts right by rshift, which is the lshift of the next step.
type step struct {
	mask   uint64
	lshift uint64
	rshift uint64
}

// buildSchedule derives the steps that move bit b of a value to bit b*dimensions.
// Bit b has to travel b*(dimensions-1) positions. Each step moves a bit by one
// power of two of that distance, from the largest down, and a step is only
// kept if some bit actually travels by that power.
func buildSchedule(dimensions, bits uint64) []step {
	steps := []step{{mask: ^uint64(0) >> (64 - bits)}}

	for shift := roundDownPow2(dimensions * (bits - 1)); shift > 0; shift >>= 1 {
		var mask, shifted uint64
		for bit := uint64(0); bit < bits; bit++ {
			distance := dimensions*bit - bit
			shifted |= shift & distance
			// where this bit sits once every step of at least shift has run
			mask |= uint64(1) << bit << (^(shift - 1) & distance)
		}
		if shifted != 0 {
			steps = append(steps, step{mask: mask, lshift: shift})
		}
	}

	frozen := make([]step, len(steps))
	copy(frozen, steps)
	for i := 0; i < len(frozen)-1; i++ {
		frozen[i].rshift = frozen[i+1].lshift
	}
	return frozen
}

// roundDownPow2 returns the largest power of two not greater than v, or 0
// when v is 0.
func roundDownPow2(v uint64) uint64 {
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v - (v >> 1)
}

// Spread moves the bits of value, which must fit in the codec's bits, so
// that consecutive bits are Dimensions() positions apart.
func (m *Morton64) Spread(value uint64) uint64 {
	for _, s := range m.steps {
		value = (value | (value << s.lshift)) & s.mask
	}
	return value
}

// Gather is the inverse of Spread. It collects every Dimensions()-th bit of
// code, starting at bit 0, into a contiguous value.
func (m *Morton64) Gather(code uint64) uint64 {
	for i := len(m.steps) - 1; i >= 0; i-- {
		s := m.steps[i]
		code = (code | (code >> s.rshift)) & s.mask
	}
	return code
}
