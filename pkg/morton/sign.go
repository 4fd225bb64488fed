package morton

import "fmt"

// Signed values are stored in sign-magnitude form: the magnitude in the low
// Bits()-1 bits and the sign in the top bit of the dimension. The accepted
// range is (-2^(B-1), 2^(B-1)); -2^(B-1) itself is rejected.

func (m *Morton64) signBit() uint64 {
	return uint64(1) << (m.bits - 1)
}

// shiftSign converts value to its sign-magnitude form.
func (m *Morton64) shiftSign(value int64) (uint64, error) {
	limit := m.signBit()
	var magnitude uint64
	if value < 0 {
		// -math.MinInt64 wraps back to 1<<63, which is never below limit
		magnitude = uint64(-value)
	} else {
		magnitude = uint64(value)
	}
	if magnitude >= limit {
		return 0, fmt.Errorf("%w: morton64 with %d bits per dimension received signed %d to pack",
			ErrValueOutOfRange, m.bits, value)
	}
	if value < 0 {
		return magnitude | limit, nil
	}
	return magnitude, nil
}

// unshiftSign converts a sign-magnitude value back to a signed one.
func (m *Morton64) unshiftSign(value uint64) int64 {
	sign := value & m.signBit()
	magnitude := int64(value & (m.signBit() - 1))
	if sign != 0 {
		return -magnitude
	}
	return magnitude
}

// SPack is Pack for signed values.
func (m *Morton64) SPack(values ...int64) (uint64, error) {
	uvalues := make([]uint64, len(values))
	for i, v := range values {
		u, err := m.shiftSign(v)
		if err != nil {
			return 0, err
		}
		uvalues[i] = u
	}
	return m.Pack(uvalues...)
}

// SUnpack is Unpack for codes made by SPack.
func (m *Morton64) SUnpack(code uint64) []int64 {
	uvalues := m.Unpack(code)
	values := make([]int64, len(uvalues))
	for i, u := range uvalues {
		values[i] = m.unshiftSign(u)
	}
	return values
}

// SPack2 is Pack2 for signed values.
func (m *Morton64) SPack2(value0, value1 int64) (uint64, error) {
	u0, err0 := m.shiftSign(value0)
	u1, err1 := m.shiftSign(value1)
	if err := firstErr(err0, err1); err != nil {
		return 0, err
	}
	return m.Pack2(u0, u1)
}

// SPack3 is Pack3 for signed values.
func (m *Morton64) SPack3(value0, value1, value2 int64) (uint64, error) {
	u0, err0 := m.shiftSign(value0)
	u1, err1 := m.shiftSign(value1)
	u2, err2 := m.shiftSign(value2)
	if err := firstErr(err0, err1, err2); err != nil {
		return 0, err
	}
	return m.Pack3(u0, u1, u2)
}

// SPack4 is Pack4 for signed values.
func (m *Morton64) SPack4(value0, value1, value2, value3 int64) (uint64, error) {
	u0, err0 := m.shiftSign(value0)
	u1, err1 := m.shiftSign(value1)
	u2, err2 := m.shiftSign(value2)
	u3, err3 := m.shiftSign(value3)
	if err := firstErr(err0, err1, err2, err3); err != nil {
		return 0, err
	}
	return m.Pack4(u0, u1, u2, u3)
}

// SUnpack2 is Unpack2 for codes made by SPack2.
func (m *Morton64) SUnpack2(code uint64) (value0, value1 int64) {
	u0, u1 := m.Unpack2(code)
	return m.unshiftSign(u0), m.unshiftSign(u1)
}

// SUnpack3 is Unpack3 for codes made by SPack3.
func (m *Morton64) SUnpack3(code uint64) (value0, value1, value2 int64) {
	u0, u1, u2 := m.Unpack3(code)
	return m.unshiftSign(u0), m.unshiftSign(u1), m.unshiftSign(u2)
}

// SUnpack4 is Unpack4 for codes made by SPack4.
func (m *Morton64) SUnpack4(code uint64) (value0, value1, value2, value3 int64) {
	u0, u1, u2, u3 := m.Unpack4(code)
	return m.unshiftSign(u0), m.unshiftSign(u1), m.unshiftSign(u2), m.unshiftSign(u3)
}
