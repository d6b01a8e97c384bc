// Package primekit provides a deterministic trial-division primality test
// and a lazily evaluated generator of the prime sequence.
//
// # Summary
//
// IsPrime decides primality over the whole uint64 domain.
// Generator walks the primes in ascending order with a 6k±1 wheel,
// and it implements the pull iterator shape (Next, Value, Err, Close) used across frameless.
// Seq and SeqE expose the same sequence as range-over-func iterators,
// so the primes compose with iterkit pipelines like Head, Filter or Map.
package primekit

import "math"

// IsPrime reports whether n is a prime number.
//
// Candidate divisors are scanned in 6k±1 steps up to the ceiling of √n.
// The function is pure and safe to call concurrently.
func IsPrime(n uint64) bool {
	if n < 4 {
		return n > 1
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	maxP := sqrtCeil(n)
	for p := uint64(5); p <= maxP; p += 6 {
		if n%p == 0 || n%(p+2) == 0 {
			return false
		}
	}
	return true
}

// maxSqrt is the smallest value whose square no longer fits into an uint64.
const maxSqrt uint64 = 1 << 32

// sqrtCeil returns an upper bound for √n that is never smaller than ⌈√n⌉.
//
// The float square root is the fast path.
// Above 2^53 float64 can't represent n exactly,
// so the result is corrected upwards with integer arithmetic until its square covers n.
func sqrtCeil(n uint64) uint64 {
	r := uint64(math.Ceil(math.Sqrt(float64(n))))
	for r < maxSqrt && r*r < n {
		r++
	}
	return r
}
