package eval

import (
	"math/rand"
	"sync"
	"time"
)

// sharedRand is the evaluator-owned PRNG backing the rand operator when no
// explicit seed was requested, seeded lazily from wall-clock on first use
// and left unchanged thereafter. Grounded on the teacher's
// runtime/primitives.go randomMu/randomRand package-level mutex pair.
var (
	randMu     sync.Mutex
	randSource *rand.Rand
)

func sharedRand() *rand.Rand {
	randMu.Lock()
	defer randMu.Unlock()
	if randSource == nil {
		randSource = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return randSource
}

// rng returns the generator a's rand operator should draw from: a private
// generator seeded once from a.seed if WithSeed was used, else the shared
// lazily-seeded default. Per SPEC_FULL's randomness design note, the
// explicit seed is the Go-level hook standing in for the grammar having no
// random-seed primitive of its own.
func (a *Assist) rng() *rand.Rand {
	if a.seed != nil {
		if a.privateRand == nil {
			a.privateRand = rand.New(rand.NewSource(*a.seed))
		}
		return a.privateRand
	}
	return sharedRand()
}
