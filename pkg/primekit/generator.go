package primekit

import (
	"math"

	"go.llib.dev/frameless/pkg/errorkit"
)

// ErrExhausted is returned by Generator.Err once the 6k±1 wheel
// has moved past the largest candidate that fits into an uint64.
// The last prime produced before that is 18446744073709551557.
const ErrExhausted errorkit.Error = "primekit: prime sequence exhausted the uint64 range"

// New returns a Generator positioned before the first prime.
func New() *Generator {
	return &Generator{
		current: 2,
		next:    3,
		trialA:  5,
		trialB:  7,
	}
}

// NewFrom returns a Generator positioned before the first prime that is not smaller than n.
//
// Only the primes from n onwards are tested, so starting far into the sequence
// costs a few IsPrime calls instead of a walk from 2.
func NewFrom(n uint64) *Generator {
	switch {
	case n <= 2:
		return New()
	case n == 3:
		return &Generator{current: 3, next: 5, trialA: 7, trialB: 11}
	}
	g := &Generator{}
	g.trialA, g.trialB = wheelCandidates(n)
	g.advance()
	g.current = g.next
	if g.current != 0 {
		g.advance()
	}
	return g
}

// Generator produces the ascending sequence of primes, starting from 2.
//
// It always holds one verified prime ahead of the value it hands out,
// so a successful Next never depends on work that could still fail.
// A Generator is meant to be used by a single consumer.
// The zero value is not usable; create one with New.
type Generator struct {
	current uint64
	next    uint64
	// trialA and trialB are the next two untested 6k±1 candidates.
	// A zero candidate marks a wheel slot that fell outside of the uint64 range.
	trialA uint64
	trialB uint64

	value  uint64
	err    error
	closed bool
}

// Next advances the Generator to the next prime, which then can be accessed with Value.
// It returns false after Close, or when the sequence ran out of the uint64 range.
func (g *Generator) Next() bool {
	if g.closed || g.err != nil {
		return false
	}
	if g.current == 0 {
		g.err = ErrExhausted
		return false
	}
	g.value = g.current
	g.current = g.next
	g.advance()
	return true
}

// advance moves the look-ahead to the next prime candidate that passes IsPrime.
func (g *Generator) advance() {
	for {
		if g.trialA == 0 {
			g.next = 0
			return
		}
		g.next = g.trialA
		g.trialA = g.trialB
		g.trialB = wheelStep(g.next)
		if IsPrime(g.next) {
			return
		}
	}
}

// Value returns the prime from the last successful Next call.
func (g *Generator) Value() uint64 {
	return g.value
}

// Err returns ErrExhausted when the Generator ran past the uint64 range.
func (g *Generator) Err() error {
	return g.err
}

// Close stops the Generator. It is safe to call it multiple times.
func (g *Generator) Close() error {
	g.closed = true
	return nil
}

// wheelCandidates returns the first two 6k±1 candidates that are not smaller than n, for n > 3.
// A candidate beyond the uint64 range is zero.
func wheelCandidates(n uint64) (uint64, uint64) {
	var a uint64
	switch r := n % 6; r {
	case 0:
		a = n + 1
	case 1:
		a = n
	default:
		if math.MaxUint64-(5-r) < n {
			return 0, 0
		}
		a = n + (5 - r)
	}
	if a%6 == 5 {
		return a, wheelAdd(a, 2)
	}
	return a, wheelAdd(a, 4)
}

// wheelStep returns the wheel candidate 6 above c, or zero when it would overflow.
func wheelStep(c uint64) uint64 {
	return wheelAdd(c, 6)
}

func wheelAdd(c, d uint64) uint64 {
	if c == 0 || math.MaxUint64-d < c {
		return 0
	}
	return c + d
}
