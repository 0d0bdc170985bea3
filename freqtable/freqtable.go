// Package freqtable reads and writes precomputed symbol frequency tables.
//
// A table is a YAML (or JSON) mapping of single character keys to positive
// counts:
//
//	a: 5
//	b: 9
//	" ": 12
package freqtable

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var ErrBadTable = errors.New("freqtable: invalid frequency table")

// Read parses a table from r.
func Read(r io.Reader) (map[rune]uint64, error) {
	var raw map[string]int64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrBadTable)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrBadTable)
	}

	freqs := make(map[rune]uint64, len(raw))
	for key, count := range raw {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: key %q is not a single character", ErrBadTable, key)
		}
		sym, _ := utf8.DecodeRuneInString(key)
		if sym == utf8.RuneError {
			return nil, fmt.Errorf("%w: key %q is not valid UTF-8", ErrBadTable, key)
		}
		if count <= 0 {
			return nil, fmt.Errorf("%w: count %d for %q must be positive", ErrBadTable, count, key)
		}
		freqs[sym] = uint64(count)
	}
	return freqs, nil
}

// Write emits freqs as YAML with keys in sorted order.
func Write(w io.Writer, freqs map[rune]uint64) error {
	raw := make(map[string]uint64, len(freqs))
	for sym, count := range freqs {
		raw[string(sym)] = count
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return enc.Close()
}
