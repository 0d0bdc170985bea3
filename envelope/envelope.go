// Package envelope defines the persisted form of an encoded message: the
// frequency table needed to rebuild the code tree, followed by the packed
// stream, as one deterministic CBOR record.
package envelope

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/forestrie/go-huffman/packer"
	"github.com/fxamacker/cbor/v2"
)

const (
	Magic          = "HUF\x01"
	CurrentVersion = uint8(1)
)

var (
	ErrBadMagic      = errors.New("envelope: magic not recognised")
	ErrBadVersion    = errors.New("envelope: unsupported version")
	ErrPayloadLength = errors.New("envelope: payload length does not match bit length")
	ErrBadTable      = errors.New("envelope: frequency table invalid")
)

// Entry is one row of the frequency table.
type Entry[S cmp.Ordered] struct {
	Symbol S      `cbor:"1,keyasint"`
	Count  uint64 `cbor:"2,keyasint"`
}

// Envelope is the persisted record. Frequencies are sorted by symbol so the
// same message always encodes to the same bytes, and rebuilding the tree
// from them reproduces the codes used for Payload.
type Envelope[S cmp.Ordered] struct {
	Magic       string     `cbor:"1,keyasint"`
	Version     uint8      `cbor:"2,keyasint"`
	Frequencies []Entry[S] `cbor:"3,keyasint"`
	BitLength   uint64     `cbor:"4,keyasint"`
	Padding     uint8      `cbor:"5,keyasint"`
	Payload     []byte     `cbor:"6,keyasint"`
}

// New assembles an envelope for a packed stream.
func New[S cmp.Ordered](freqs map[S]uint64, s packer.Stream) Envelope[S] {
	entries := make([]Entry[S], 0, len(freqs))
	for sym, count := range freqs {
		entries = append(entries, Entry[S]{Symbol: sym, Count: count})
	}
	slices.SortFunc(entries, func(a, b Entry[S]) int { return cmp.Compare(a.Symbol, b.Symbol) })

	return Envelope[S]{
		Magic:       Magic,
		Version:     CurrentVersion,
		Frequencies: entries,
		BitLength:   s.BitLength,
		Padding:     s.Padding(),
		Payload:     s.Data,
	}
}

// Table returns the frequency table as a map.
func (e Envelope[S]) Table() map[S]uint64 {
	freqs := make(map[S]uint64, len(e.Frequencies))
	for _, entry := range e.Frequencies {
		freqs[entry.Symbol] = entry.Count
	}
	return freqs
}

// Stream returns the packed payload.
func (e Envelope[S]) Stream() packer.Stream {
	return packer.Stream{Data: e.Payload, BitLength: e.BitLength}
}

// Check verifies the header fields and that the payload is consistent with
// the declared bit length.
func (e Envelope[S]) Check() error {
	if e.Magic != Magic {
		return ErrBadMagic
	}
	if e.Version != CurrentVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, e.Version)
	}
	if len(e.Frequencies) == 0 {
		return fmt.Errorf("%w: empty", ErrBadTable)
	}
	for i, entry := range e.Frequencies {
		if entry.Count == 0 {
			return fmt.Errorf("%w: zero count for %v", ErrBadTable, entry.Symbol)
		}
		if i > 0 && cmp.Compare(e.Frequencies[i-1].Symbol, entry.Symbol) >= 0 {
			return fmt.Errorf("%w: symbols not strictly ascending at %d", ErrBadTable, i)
		}
	}
	if uint64(len(e.Payload)) != (e.BitLength+7)/8 {
		return fmt.Errorf("%w: %d bytes for %d bits", ErrPayloadLength, len(e.Payload), e.BitLength)
	}
	if e.Padding != e.Stream().Padding() {
		return fmt.Errorf("%w: padding %d for %d bits", ErrPayloadLength, e.Padding, e.BitLength)
	}
	return nil
}

// Codec holds the CBOR modes used for envelopes.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

// Marshal checks e and encodes it.
func Marshal[S cmp.Ordered](c Codec, e Envelope[S]) ([]byte, error) {
	if err := e.Check(); err != nil {
		return nil, err
	}
	return c.enc.Marshal(e)
}

// Unmarshal decodes and checks an envelope.
func Unmarshal[S cmp.Ordered](c Codec, data []byte) (Envelope[S], error) {
	var e Envelope[S]
	if err := c.dec.Unmarshal(data, &e); err != nil {
		return Envelope[S]{}, err
	}
	if err := e.Check(); err != nil {
		return Envelope[S]{}, err
	}
	return e, nil
}

// MarshalTable encodes only the sorted frequency table. Equal tables always
// encode to equal bytes, which makes the result usable as a cache key.
func MarshalTable[S cmp.Ordered](c Codec, freqs map[S]uint64) ([]byte, error) {
	return c.enc.Marshal(New(freqs, packer.Stream{}).Frequencies)
}
