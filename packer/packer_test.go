package packer

import (
	"bytes"
	"testing"

	"github.com/forestrie/go-huffman/bitbuf"
	"github.com/forestrie/go-huffman/huffman"
	"github.com/forestrie/go-huffman/huffmantesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackKnownCodes(t *testing.T) {
	codes := huffman.Codes[rune]{
		'a': bitbuf.MustFromString("0"),
		'b': bitbuf.MustFromString("10"),
		'c': bitbuf.MustFromString("11"),
	}

	tests := []struct {
		name    string
		input   string
		data    []byte
		bits    uint64
		padding uint8
	}{
		{"empty", "", nil, 0, 0},
		{"one bit", "a", []byte{0x00}, 1, 7},
		{"partial byte", "bca", []byte{0xb0}, 5, 3},
		// 10 11 0 10 11 0 11 -> 10110101 1011
		{"crosses byte", "bcabcac", []byte{0xb5, 0xb0}, 12, 4},
		// 0 10 11 0 10 11 0 -> 01011010 110
		{"odd tail", "abcabca", []byte{0x5a, 0xc0}, 11, 5},
		{"aligned", "bcbc", []byte{0xbb}, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Pack(codes, []rune(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.bits, s.BitLength)
			assert.Equal(t, tt.padding, s.Padding())
			if len(tt.data) == 0 {
				assert.Empty(t, s.Data)
				return
			}
			assert.Equal(t, tt.data, s.Data)
		})
	}
}

func TestPackUnknownSymbol(t *testing.T) {
	codes, err := huffman.Encode(map[rune]uint64{'a': 1, 'b': 2})
	require.NoError(t, err)

	_, err = Pack(codes, []rune("abz"))
	require.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestPackLongCodes(t *testing.T) {
	_, g := huffmantesting.NewTestContextAndGenerator(t, "TestPackLongCodes")

	freqs := g.SkewedFrequencies(30)
	codes, err := huffman.Encode(freqs)
	require.NoError(t, err)

	msg := g.Message(map[rune]uint64{huffmantesting.FirstSymbol: 3, huffmantesting.FirstSymbol + 29: 2})
	s, err := Pack(codes, msg)
	require.NoError(t, err)

	// rebuild the expected stream bit by bit
	var want bitbuf.Buffer
	for _, sym := range msg {
		want.AppendBuffer(codes[sym])
	}
	assert.Equal(t, uint64(want.Len()), s.BitLength)
	assert.Equal(t, want.Bytes(), s.Data)
}

func TestPackMatchesCost(t *testing.T) {
	_, g := huffmantesting.NewTestContextAndGenerator(t, "TestPackMatchesCost")

	for i := 0; i < 10; i++ {
		freqs := g.Frequencies(1+g.Intn(40), 20)
		codes, err := huffman.Encode(freqs)
		require.NoError(t, err)
		cost, err := codes.Cost(freqs)
		require.NoError(t, err)

		s, err := Pack(codes, g.Message(freqs))
		require.NoError(t, err)
		assert.Equal(t, cost, s.BitLength)
		assert.Equal(t, int((cost+7)/8), len(s.Data))
	}
}

func TestWriterStreamsAcrossCalls(t *testing.T) {
	codes := huffman.Codes[byte]{
		'x': bitbuf.MustFromString("1"),
		'y': bitbuf.MustFromString("01"),
	}
	var out bytes.Buffer
	w := NewWriter(&out, codes)
	require.NoError(t, w.Write('x', 'y'))
	require.NoError(t, w.Write('y', 'x', 'x', 'x'))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	// 1 01 01 1 1 1 -> 10101111
	assert.Equal(t, []byte{0xaf}, out.Bytes())
	assert.Equal(t, uint64(8), w.Bits())
	require.ErrorIs(t, w.Write('x'), ErrClosed)
}
