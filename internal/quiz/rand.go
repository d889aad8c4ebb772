package quiz

import "math/rand"

// Rand is the randomness a quiz needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the package-level math/rand source, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int                     { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// sample returns min(k, len(items)) elements drawn uniformly without
// replacement. items is not modified.
func sample[T any](items []T, k int, rng Rand) []T {
	n := len(items)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	picked := make([]T, n)
	copy(picked, items)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}
