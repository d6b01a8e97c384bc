package primekit

import (
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// Seq returns the infinite, ascending sequence of primes.
//
// Every range over the returned sequence starts from 2 with its own Generator,
// so the sequence can be iterated multiple times, even concurrently.
// Bound it with a break or with iterkit.Head.
func Seq() iter.Seq[uint64] {
	return seq(New)
}

// SeqFrom is like Seq, but it starts at the first prime that is not smaller than n.
func SeqFrom(n uint64) iter.Seq[uint64] {
	return seq(func() *Generator { return NewFrom(n) })
}

// SeqE is like Seq, but it reports the end of the uint64 range
// as a final ErrExhausted element instead of ending silently.
func SeqE() iterkit.SeqE[uint64] {
	return seqE(New)
}

func seq(newGenerator func() *Generator) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for p, err := range iterkit.FromPullIter[uint64](newGenerator()) {
			if err != nil || !yield(p) {
				return
			}
		}
	}
}

func seqE(newGenerator func() *Generator) iterkit.SeqE[uint64] {
	return func(yield func(uint64, error) bool) {
		for p, err := range iterkit.FromPullIter[uint64](newGenerator()) {
			if !yield(p, err) {
				return
			}
		}
	}
}
