package morton

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randSigned(rnd *rand.Rand, bits uint64) int64 {
	magnitude := int64(rnd.Uint64() >> (65 - bits))
	if rnd.Intn(2) == 0 {
		return -magnitude
	}
	return magnitude
}

func TestSignedValueBoundaries(t *testing.T) {
	for _, tc := range []struct {
		dimensions, bits uint64
		value            int64
	}{
		{2, 2, 2},
		{2, 2, -2},
		{16, 4, 8},
		{16, 4, -8},
		{1, 64, math.MinInt64},
		{2, 32, 1 << 31},
		{2, 32, -(1 << 31)},
	} {
		m := MustNew(tc.dimensions, tc.bits)
		values := make([]int64, tc.dimensions)
		values[0] = tc.value
		_, err := m.SPack(values...)
		require.True(t, errors.Is(err, ErrValueOutOfRange), "%s spack(%d): %v", m, tc.value, err)
	}
}

// -2^(B-1) is outside the signed domain, so for two bits only -1, 0 and 1 pack.
func TestSignedNegativeBoundaryRejected(t *testing.T) {
	m := MustNew(2, 2)
	for _, v := range []int64{-1, 0, 1} {
		code, err := m.SPack2(v, -v)
		require.NoError(t, err)
		v0, v1 := m.SUnpack2(code)
		require.Equal(t, v, v0)
		require.Equal(t, -v, v1)
	}
	_, err := m.SPack2(-2, 0)
	require.True(t, errors.Is(err, ErrValueOutOfRange))
	_, err = m.SPack2(0, -2)
	require.True(t, errors.Is(err, ErrValueOutOfRange))
}

func TestShiftSign(t *testing.T) {
	m := MustNew(2, 8)
	for in, exp := range map[int64]uint64{
		0:    0,
		1:    1,
		127:  127,
		-1:   0x81,
		-127: 0xff,
	} {
		got, err := m.shiftSign(in)
		require.NoError(t, err)
		require.Equal(t, exp, got, "shiftSign(%d)", in)
		require.Equal(t, in, m.unshiftSign(got))
	}
	// a set sign bit with no magnitude reads back as zero
	require.Equal(t, int64(0), m.unshiftSign(0x80))
}

func TestSignedRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	for _, l := range layouts() {
		if l[1] < 2 {
			continue
		}
		m := MustNew(l[0], l[1])
		values := make([]int64, l[0])
		for i := 0; i < 20; i++ {
			for j := range values {
				values[j] = randSigned(rnd, l[1])
			}
			code, err := m.SPack(values...)
			require.NoError(t, err, "%s spack(%v)", m, values)
			require.Equal(t, values, m.SUnpack(code), "%s", m)
		}
	}
}

func TestSignedExtremes(t *testing.T) {
	m := MustNew(1, 64)
	for _, v := range []int64{math.MaxInt64, -math.MaxInt64, 0, -1} {
		code, err := m.SPack(v)
		require.NoError(t, err)
		require.Equal(t, []int64{v}, m.SUnpack(code))
	}

	m = MustNew(3, 21)
	code, err := m.SPack(-1, -2, -4)
	require.NoError(t, err)
	require.Equal(t, []int64{-1, -2, -4}, m.SUnpack(code))
}

func TestSignedFixedArity(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for bits := uint64(2); bits <= 16; bits++ {
		m2, m3, m4 := MustNew(2, bits), MustNew(3, bits), MustNew(4, bits)
		for i := 0; i < 100; i++ {
			v0, v1, v2, v3 := randSigned(rnd, bits), randSigned(rnd, bits), randSigned(rnd, bits), randSigned(rnd, bits)

			code, err := m2.SPack2(v0, v1)
			require.NoError(t, err)
			generic, _ := m2.SPack(v0, v1)
			require.Equal(t, generic, code)
			s0, s1 := m2.SUnpack2(code)
			require.Equal(t, []int64{v0, v1}, []int64{s0, s1})

			code, err = m3.SPack3(v0, v1, v2)
			require.NoError(t, err)
			generic, _ = m3.SPack(v0, v1, v2)
			require.Equal(t, generic, code)
			s0, s1, s2 := m3.SUnpack3(code)
			require.Equal(t, []int64{v0, v1, v2}, []int64{s0, s1, s2})

			code, err = m4.SPack4(v0, v1, v2, v3)
			require.NoError(t, err)
			generic, _ = m4.SPack(v0, v1, v2, v3)
			require.Equal(t, generic, code)
			s0, s1, s2, s3 := m4.SUnpack4(code)
			require.Equal(t, []int64{v0, v1, v2, v3}, []int64{s0, s1, s2, s3})
		}
	}

	_, err := MustNew(3, 4).SPack2(1, 2)
	require.True(t, errors.Is(err, ErrDimensionMismatch))
}
