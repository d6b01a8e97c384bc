package primekit

import (
	"fmt"
	"math"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// largestPrime is the largest prime that fits into an uint64.
const largestPrime uint64 = 18446744073709551557

func TestGenerator_exhaustion(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the wheel stops at the end of the uint64 range instead of wrapping around", func(t *testcase.T) {
		// the two remaining 6k±1 candidates below 2^64 are both composite
		g := &Generator{current: 7, next: 11, trialA: math.MaxUint64 - 4, trialB: math.MaxUint64 - 2}

		assert.True(t, g.Next())
		assert.Equal(t, 7, g.Value())
		assert.True(t, g.Next())
		assert.Equal(t, 11, g.Value())
		assert.False(t, g.Next())
		assert.ErrorIs(t, g.Err(), ErrExhausted)
		assert.Equal(t, 11, g.Value())
		assert.False(t, g.Next(), "exhaustion is permanent")
	})

	s.Test("buffered primes are emitted before exhaustion is reported", func(t *testcase.T) {
		g := &Generator{current: 13, next: largestPrime, trialA: 0, trialB: 0}

		var got []uint64
		for g.Next() {
			got = append(got, g.Value())
		}
		assert.Equal(t, []uint64{13, largestPrime}, got)
		assert.ErrorIs(t, g.Err(), ErrExhausted)
	})

	s.Test("SeqE reports exhaustion as its last element", func(t *testcase.T) {
		primes := seqE(func() *Generator {
			return &Generator{current: 13, next: largestPrime}
		})
		var (
			got  []uint64
			errs []error
		)
		for p, err := range primes {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			got = append(got, p)
		}
		assert.Equal(t, []uint64{13, largestPrime}, got)
		assert.Equal(t, 1, len(errs))
		assert.ErrorIs(t, errs[0], ErrExhausted)
	})
}

func TestWheelStep(t *testing.T) {
	assert.Equal(t, 11, wheelStep(5))
	assert.Equal(t, 13, wheelStep(7))
	assert.Equal(t, math.MaxUint64, wheelStep(math.MaxUint64-6))
	assert.Equal(t, 0, wheelStep(math.MaxUint64-5))
	assert.Equal(t, 0, wheelStep(math.MaxUint64-2))
	assert.Equal(t, 0, wheelStep(0))
}

func TestWheelCandidates(t *testing.T) {
	for n, exp := range map[uint64][2]uint64{
		4:                  {5, 7},
		5:                  {5, 7},
		6:                  {7, 11},
		7:                  {7, 11},
		8:                  {11, 13},
		12:                 {13, 17},
		math.MaxUint64 - 4: {math.MaxUint64 - 4, math.MaxUint64 - 2},
		math.MaxUint64 - 3: {math.MaxUint64 - 2, 0},
		math.MaxUint64 - 2: {math.MaxUint64 - 2, 0},
		math.MaxUint64 - 1: {0, 0},
		math.MaxUint64:     {0, 0},
		largestPrime:       {largestPrime, largestPrime + 2},
	} {
		a, b := wheelCandidates(n)
		assert.Equal(t, exp, [2]uint64{a, b}, assert.Message(fmt.Sprint(n)))
	}
}

func TestNewFrom_endOfRange(t *testing.T) {
	g := NewFrom(math.MaxUint64 - 1)
	assert.False(t, g.Next())
	assert.ErrorIs(t, g.Err(), ErrExhausted)
}

func TestGenerator_wheelInvariants(t *testing.T) {
	g := New()
	for i := 0; i < 1000; i++ {
		assert.True(t, g.Next())
		assert.True(t, g.value < g.current)
		assert.True(t, g.current < g.next)
		assert.True(t, g.next < g.trialA)
		assert.True(t, IsPrime(g.next))
		assert.True(t, g.trialB-g.trialA == 2 || g.trialB-g.trialA == 4)
		for _, c := range []uint64{g.trialA, g.trialB} {
			assert.True(t, c%6 == 1 || c%6 == 5, "trial candidates are expected to be 6k±1")
		}
	}
}

func TestSqrtCeil(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("small values", func(t *testcase.T) {
		assert.Equal(t, 0, sqrtCeil(0))
		assert.Equal(t, 1, sqrtCeil(1))
		assert.Equal(t, 2, sqrtCeil(2))
		assert.Equal(t, 3, sqrtCeil(9))
		assert.Equal(t, 4, sqrtCeil(10))
	})

	s.Test("never below the integer square root near 2^64", func(t *testcase.T) {
		for _, p := range []uint64{
			4294967291, // largest prime below 2^32
			4294967279,
			94906249,
			65521,
		} {
			assert.True(t, p <= sqrtCeil(p*p))
			if p+1 < maxSqrt {
				assert.True(t, p <= sqrtCeil(p*(p+1)))
			}
		}
	})

	s.Test("random values in the upper half of the uint64 range", func(t *testcase.T) {
		r := uint64(t.Random.IntBetween(1<<31, 1<<32-1))
		n := r * r
		got := sqrtCeil(n)
		assert.True(t, r <= got)
		assert.True(t, got-r <= 1, "the bound is expected to stay tight")
	})

	s.Test("the top of the range", func(t *testcase.T) {
		assert.Equal(t, maxSqrt, sqrtCeil(math.MaxUint64))
	})
}
