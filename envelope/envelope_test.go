package envelope

import (
	"testing"

	"github.com/forestrie/go-huffman/huffman"
	"github.com/forestrie/go-huffman/huffmantesting"
	"github.com/forestrie/go-huffman/packer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeMessage(t *testing.T, freqs map[rune]uint64, msg []rune) Envelope[rune] {
	t.Helper()
	codes, err := huffman.Encode(freqs)
	require.NoError(t, err)
	s, err := packer.Pack(codes, msg)
	require.NoError(t, err)
	return New(freqs, s)
}

func TestEnvelopeHeaderSurvivesRoundTrip(t *testing.T) {
	_, g := huffmantesting.NewTestContextAndGenerator(t, "TestEnvelopeHeaderSurvivesRoundTrip")
	codec, err := NewCodec()
	require.NoError(t, err)

	freqs := g.Frequencies(20, 30)
	e := encodeMessage(t, freqs, g.Message(freqs))

	data, err := Marshal(codec, e)
	require.NoError(t, err)

	got, err := Unmarshal[rune](codec, data)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Equal(t, freqs, got.Table())

	// the table alone reproduces the codes used for the payload
	want, err := huffman.Encode(freqs)
	require.NoError(t, err)
	again, err := huffman.Encode(got.Table())
	require.NoError(t, err)
	assert.Equal(t, want.String(), again.String())
}

func TestEnvelopeEncodingIsDeterministic(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	freqs := map[rune]uint64{'q': 1, 'a': 4, 'm': 2}
	msg := []rune("aamqaam")

	a, err := Marshal(codec, encodeMessage(t, freqs, msg))
	require.NoError(t, err)
	b, err := Marshal(codec, encodeMessage(t, freqs, msg))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEnvelopeNewSortsTable(t *testing.T) {
	e := New(map[rune]uint64{'c': 3, 'a': 1, 'b': 2}, packer.Stream{Data: []byte{0x80}, BitLength: 3})
	assert.Equal(t, []Entry[rune]{{'a', 1}, {'b', 2}, {'c', 3}}, e.Frequencies)
	assert.Equal(t, uint8(5), e.Padding)
	require.NoError(t, e.Check())
}

func TestEnvelopeCheck(t *testing.T) {
	good := func() Envelope[rune] {
		return New(map[rune]uint64{'a': 1, 'b': 1}, packer.Stream{Data: []byte{0x40}, BitLength: 2})
	}

	tests := []struct {
		name   string
		mutate func(*Envelope[rune])
		want   error
	}{
		{"magic", func(e *Envelope[rune]) { e.Magic = "HUF1" }, ErrBadMagic},
		{"version", func(e *Envelope[rune]) { e.Version = 9 }, ErrBadVersion},
		{"empty table", func(e *Envelope[rune]) { e.Frequencies = nil }, ErrBadTable},
		{"zero count", func(e *Envelope[rune]) { e.Frequencies[0].Count = 0 }, ErrBadTable},
		{"unsorted", func(e *Envelope[rune]) {
			e.Frequencies[0], e.Frequencies[1] = e.Frequencies[1], e.Frequencies[0]
		}, ErrBadTable},
		{"short payload", func(e *Envelope[rune]) { e.BitLength = 9 }, ErrPayloadLength},
		{"padding", func(e *Envelope[rune]) { e.Padding = 0 }, ErrPayloadLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := good()
			tt.mutate(&e)
			require.ErrorIs(t, e.Check(), tt.want)

			codec, err := NewCodec()
			require.NoError(t, err)
			_, err = Marshal(codec, e)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)

	_, err = Unmarshal[rune](codec, []byte{0xff, 0x00})
	require.Error(t, err)

	// well formed CBOR, wrong record
	data, err := codec.enc.Marshal(map[int]string{1: "nope"})
	require.NoError(t, err)
	_, err = Unmarshal[rune](codec, data)
	require.ErrorIs(t, err, ErrBadMagic)
}
