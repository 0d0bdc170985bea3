package huffmantesting

import (
	"maps"
	"math/rand"
	"slices"
	"testing"
)

// FirstSymbol is the first rune handed out by the generator.
const FirstSymbol = rune('!')

type TestGenerator struct {
	T   *testing.T
	rng *rand.Rand
}

func NewTestGenerator(t *testing.T, seed int64) TestGenerator {
	return TestGenerator{
		T:   t,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Frequencies returns a table of n symbols starting at FirstSymbol with
// counts in [1, maxCount].
func (g *TestGenerator) Frequencies(n int, maxCount uint64) map[rune]uint64 {
	if maxCount == 0 {
		maxCount = 1
	}
	freqs := make(map[rune]uint64, n)
	for i := 0; i < n; i++ {
		freqs[FirstSymbol+rune(i)] = 1 + uint64(g.rng.Int63n(int64(maxCount)))
	}
	return freqs
}

// SkewedFrequencies returns a table of n symbols with Fibonacci counts,
// which produces the deepest possible tree for n leaves.
func (g *TestGenerator) SkewedFrequencies(n int) map[rune]uint64 {
	freqs := make(map[rune]uint64, n)
	a, b := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		freqs[FirstSymbol+rune(i)] = a
		a, b = b, a+b
	}
	return freqs
}

// Message returns a shuffled sequence holding each symbol exactly as many
// times as its count.
func (g *TestGenerator) Message(freqs map[rune]uint64) []rune {
	var msg []rune
	for _, s := range slices.Sorted(maps.Keys(freqs)) {
		for i := uint64(0); i < freqs[s]; i++ {
			msg = append(msg, s)
		}
	}
	g.rng.Shuffle(len(msg), func(i, j int) { msg[i], msg[j] = msg[j], msg[i] })
	return msg
}

// Intn exposes the generator's rng for ad hoc choices.
func (g *TestGenerator) Intn(n int) int {
	return g.rng.Intn(n)
}
