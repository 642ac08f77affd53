package eval

import (
	"math"
	"sync"
)

// sieve is a lazily grown Sieve-of-Eratosthenes bitmap backing the
// pri/com/npri/ncom operators (§4.4.3's "maintained by a lazily grown
// bitmap-sieve" note). Growth policy: when a query needs range R and the
// current sieve size is below R, regrow to max(3R/2, 10000).
//
// Guarded the same way the teacher guards its PRNG
// (runtime/primitives.go's randomMu/randomRand pair): one package-level
// mutex protecting one package-level instance, since §5 calls out the
// sieve as shared mutable state a concurrent caller must externally
// synchronise around.
type sieve struct {
	composite []bool // composite[i] true means i is known composite
	limit     int64  // sieve covers [0, limit]
}

var (
	sieveMu     sync.Mutex
	globalSieve = &sieve{}
)

func (s *sieve) ensure(limit int64) {
	if limit <= s.limit {
		return
	}
	newLimit := limit * 3 / 2
	if newLimit < 10000 {
		newLimit = 10000
	}
	composite := make([]bool, newLimit+1)
	composite[0] = true
	if newLimit >= 1 {
		composite[1] = true
	}
	for i := int64(2); i*i <= newLimit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= newLimit; j += i {
			composite[j] = true
		}
	}
	s.composite = composite
	s.limit = newLimit
}

func (s *sieve) isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	s.ensure(n)
	return !s.composite[n]
}

func (s *sieve) nthPrime(n int64) int64 {
	if n < 0 {
		return 0
	}
	estimate := primeUpperBound(n)
	s.ensure(estimate)
	count := int64(-1)
	for i := int64(2); i <= s.limit; i++ {
		if !s.composite[i] {
			count++
			if count == n {
				return i
			}
		}
	}
	// Estimate undershot; widen until found.
	for {
		s.ensure(s.limit * 2)
		for i := s.limit / 2; i <= s.limit; i++ {
			if !s.composite[i] {
				count++
				if count == n {
					return i
				}
			}
		}
	}
}

func (s *sieve) nthComposite(n int64) int64 {
	if n < 0 {
		return 0
	}
	estimate := primeUpperBound(n) * 2
	s.ensure(estimate)
	count := int64(-1)
	for i := int64(4); i <= s.limit; i++ {
		if s.composite[i] {
			count++
			if count == n {
				return i
			}
		}
	}
	for {
		s.ensure(s.limit * 2)
		for i := s.limit / 2; i <= s.limit; i++ {
			if s.composite[i] {
				count++
				if count == n {
					return i
				}
			}
		}
	}
}

// primeUpperBound estimates the nth prime as n*(ln n + ln ln n), floored
// at 100 before sieving, per §4.4.3.
func primeUpperBound(n int64) int64 {
	if n < 4 {
		return 100
	}
	fn := float64(n)
	est := fn * (math.Log(fn) + math.Log(math.Log(fn)))
	if est < 100 {
		est = 100
	}
	return int64(est)
}

func isPrime(n int64) bool {
	sieveMu.Lock()
	defer sieveMu.Unlock()
	return globalSieve.isPrime(n)
}

func nthPrime(n int64) int64 {
	sieveMu.Lock()
	defer sieveMu.Unlock()
	return globalSieve.nthPrime(n)
}

func nthComposite(n int64) int64 {
	sieveMu.Lock()
	defer sieveMu.Unlock()
	return globalSieve.nthComposite(n)
}
