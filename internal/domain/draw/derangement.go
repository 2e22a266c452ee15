package draw

import "slices"

// DefaultShuffleAttempts bounds the shuffle-and-check loop before the
// rotation fallback takes over.
const DefaultShuffleAttempts = 10

// Source supplies randomness for the shuffle. *rand.Rand from
// math/rand/v2 satisfies it, which keeps seeded generators usable in
// tests.
type Source interface {
	IntN(n int) int
}

// Derange returns a permutation of items with no fixed point: the
// element at every index differs from the input at that index. It
// shuffles up to attempts times and accepts the first fixed-point-free
// result; if every attempt lands on a fixed point it falls back to the
// cyclic rotation items[(i+1) mod n], which has no fixed point for any
// n >= 2. Callers must reject inputs shorter than 2 beforehand.
func Derange(items []string, src Source, attempts int) []string {
	n := len(items)
	if n < 2 {
		return slices.Clone(items)
	}
	if attempts <= 0 {
		attempts = DefaultShuffleAttempts
	}

	for attempt := 0; attempt < attempts; attempt++ {
		candidate := shuffle(items, src)
		if fixedPointFree(items, candidate) {
			return candidate
		}
	}

	return rotate(items)
}

func shuffle(items []string, src Source) []string {
	result := slices.Clone(items)
	for i := len(result) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		result[i], result[j] = result[j], result[i]
	}
	return result
}

func fixedPointFree(original, candidate []string) bool {
	for i := range original {
		if original[i] == candidate[i] {
			return false
		}
	}
	return true
}

func rotate(items []string) []string {
	n := len(items)
	result := make([]string, n)
	for i := range items {
		result[i] = items[(i+1)%n]
	}
	return result
}
