package huffman

import (
	"fmt"
	"math"
	"math/bits"
	"slices"
	"strings"

	"github.com/forestrie/go-huffman/bitbuf"
)

// Symbols returns the symbols of c in ascending order.
func (c Codes[S]) Symbols() []S {
	symbols := make([]S, 0, len(c))
	for s := range c {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// Lookup returns the code for s.
func (c Codes[S]) Lookup(s S) (bitbuf.Buffer, error) {
	code, ok := c[s]
	if !ok {
		return bitbuf.Buffer{}, fmt.Errorf("%w: %v", ErrUnknownSymbol, s)
	}
	return code, nil
}

// Lengths returns the bit length of every code.
func (c Codes[S]) Lengths() map[S]int {
	lengths := make(map[S]int, len(c))
	for s, code := range c {
		lengths[s] = code.Len()
	}
	return lengths
}

// Cost returns sum(freqs[s] * len(c[s])), the encoded size in bits of a
// message with the given symbol counts.
func (c Codes[S]) Cost(freqs map[S]uint64) (uint64, error) {
	var total uint64
	for s, count := range freqs {
		code, err := c.Lookup(s)
		if err != nil {
			return 0, err
		}
		hi, lo := bits.Mul64(count, uint64(code.Len()))
		if hi != 0 || lo > math.MaxUint64-total {
			return 0, fmt.Errorf("%w: encoded length overflows uint64", ErrInvalidInput)
		}
		total += lo
	}
	return total, nil
}

// PrefixFree checks that no code is a prefix of another and that no code is
// empty.
//
// Sorted lexicographically, a code that prefixes any other code prefixes
// its immediate successor, so adjacent pairs are enough.
func (c Codes[S]) PrefixFree() error {
	type entry struct {
		symbol S
		code   bitbuf.Buffer
		text   string
	}
	entries := make([]entry, 0, len(c))
	for s, code := range c {
		if code.Len() == 0 {
			return fmt.Errorf("%w: empty code for %v", ErrNotPrefixFree, s)
		}
		entries = append(entries, entry{s, code, code.String()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.text, b.text)
	})
	for i := 1; i < len(entries); i++ {
		prev, next := entries[i-1], entries[i]
		if next.code.HasPrefix(prev.code) {
			return fmt.Errorf("%w: %v=%s prefixes %v=%s",
				ErrNotPrefixFree, prev.symbol, prev.text, next.symbol, next.text)
		}
	}
	return nil
}
