package huffman

import (
	"slices"
	"testing"

	"github.com/forestrie/go-huffman/huffmantesting"
	"github.com/stretchr/testify/require"
)

// minimumCost enumerates every code length vector that satisfies the Kraft
// inequality and returns the cheapest. Any such vector is realisable as a
// prefix code, so this is the optimum over all prefix codes.
func minimumCost(counts []uint64) uint64 {
	n := len(counts)
	if n == 1 {
		return counts[0]
	}
	maxLen := n - 1
	lengths := make([]int, n)
	best := ^uint64(0)

	var walk func(i int, kraft uint64)
	walk = func(i int, kraft uint64) {
		if kraft > 1<<maxLen {
			return
		}
		if i == n {
			var cost uint64
			for j, l := range lengths {
				cost += counts[j] * uint64(l)
			}
			best = min(best, cost)
			return
		}
		for l := 1; l <= maxLen; l++ {
			lengths[i] = l
			walk(i+1, kraft+1<<(maxLen-l))
		}
	}
	walk(0, 0)
	return best
}

func TestEncodeCostIsMinimal(t *testing.T) {
	_, g := huffmantesting.NewTestContextAndGenerator(t, "TestEncodeCostIsMinimal")

	for i := 0; i < 60; i++ {
		freqs := g.Frequencies(1+g.Intn(6), uint64(1+g.Intn(50)))

		codes, err := Encode(freqs)
		require.NoError(t, err)
		cost, err := codes.Cost(freqs)
		require.NoError(t, err)

		counts := make([]uint64, 0, len(freqs))
		for _, c := range freqs {
			counts = append(counts, c)
		}
		slices.Sort(counts)
		require.Equal(t, minimumCost(counts), cost, "table %v codes %v", freqs, codes)
	}
}

// twoQueueCost computes the optimal cost from sorted counts with the linear
// two queue method. It shares no code with Build.
func twoQueueCost(sorted []uint64) uint64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	leaves, merged := sorted, []uint64{}
	next := func() uint64 {
		if len(merged) == 0 || (len(leaves) > 0 && leaves[0] <= merged[0]) {
			w := leaves[0]
			leaves = leaves[1:]
			return w
		}
		w := merged[0]
		merged = merged[1:]
		return w
	}
	var cost uint64
	for len(leaves)+len(merged) > 1 {
		w := next() + next()
		cost += w
		merged = append(merged, w)
	}
	return cost
}

func TestEncodeCostMatchesTwoQueue(t *testing.T) {
	_, g := huffmantesting.NewTestContextAndGenerator(t, "TestEncodeCostMatchesTwoQueue")

	for i := 0; i < 40; i++ {
		freqs := g.Frequencies(2+g.Intn(200), uint64(1+g.Intn(10000)))

		codes, err := Encode(freqs)
		require.NoError(t, err)
		cost, err := codes.Cost(freqs)
		require.NoError(t, err)

		counts := make([]uint64, 0, len(freqs))
		for _, c := range freqs {
			counts = append(counts, c)
		}
		slices.Sort(counts)
		require.Equal(t, twoQueueCost(counts), cost)
	}
}

func TestCodesCost(t *testing.T) {
	freqs := map[rune]uint64{'a': 5, 'b': 9, 'c': 12, 'd': 13}
	codes, err := Encode(freqs)
	require.NoError(t, err)

	cost, err := codes.Cost(freqs)
	require.NoError(t, err)
	require.Equal(t, uint64(2*(5+9+12+13)), cost)

	_, err = codes.Cost(map[rune]uint64{'x': 1})
	require.ErrorIs(t, err, ErrUnknownSymbol)
}
