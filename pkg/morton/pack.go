package morton

// Pack interleaves values into a single code. It expects exactly Dimensions()
// values, each fitting in Bits() bits. Value i occupies bits i, i+D, i+2D...
func (m *Morton64) Pack(values ...uint64) (uint64, error) {
	if err := m.dimensionsCheck(len(values)); err != nil {
		return 0, err
	}
	for _, v := range values {
		if err := m.valueCheck(v); err != nil {
			return 0, err
		}
	}

	var code uint64
	for i, v := range values {
		code |= m.Spread(v) << uint(i)
	}
	return code, nil
}

// Unpack splits a code into its Dimensions() values. Any code is accepted,
// but only codes produced by Pack on the same layout give meaningful values.
func (m *Morton64) Unpack(code uint64) []uint64 {
	values := make([]uint64, m.dimensions)
	for i := range values {
		values[i] = m.Gather(code >> uint(i))
	}
	return values
}

// Pack2 is Pack for a two dimensional codec.
func (m *Morton64) Pack2(value0, value1 uint64) (uint64, error) {
	if err := m.dimensionsCheck(2); err != nil {
		return 0, err
	}
	if err := firstErr(m.valueCheck(value0), m.valueCheck(value1)); err != nil {
		return 0, err
	}
	return m.Spread(value0) | m.Spread(value1)<<1, nil
}

// Pack3 is Pack for a three dimensional codec.
func (m *Morton64) Pack3(value0, value1, value2 uint64) (uint64, error) {
	if err := m.dimensionsCheck(3); err != nil {
		return 0, err
	}
	if err := firstErr(m.valueCheck(value0), m.valueCheck(value1), m.valueCheck(value2)); err != nil {
		return 0, err
	}
	return m.Spread(value0) | m.Spread(value1)<<1 | m.Spread(value2)<<2, nil
}

// Pack4 is Pack for a four dimensional codec.
func (m *Morton64) Pack4(value0, value1, value2, value3 uint64) (uint64, error) {
	if err := m.dimensionsCheck(4); err != nil {
		return 0, err
	}
	err := firstErr(m.valueCheck(value0), m.valueCheck(value1), m.valueCheck(value2), m.valueCheck(value3))
	if err != nil {
		return 0, err
	}
	return m.Spread(value0) | m.Spread(value1)<<1 | m.Spread(value2)<<2 | m.Spread(value3)<<3, nil
}

// Unpack2 is Unpack for a two dimensional codec.
func (m *Morton64) Unpack2(code uint64) (value0, value1 uint64) {
	return m.Gather(code), m.Gather(code >> 1)
}

// Unpack3 is Unpack for a three dimensional codec.
func (m *Morton64) Unpack3(code uint64) (value0, value1, value2 uint64) {
	return m.Gather(code), m.Gather(code >> 1), m.Gather(code >> 2)
}

// Unpack4 is Unpack for a four dimensional codec.
func (m *Morton64) Unpack4(code uint64) (value0, value1, value2, value3 uint64) {
	return m.Gather(code), m.Gather(code >> 1), m.Gather(code >> 2), m.Gather(code >> 3)
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
