// Package packer concatenates per-symbol prefix codes into one MSB-first
// byte stream.
package packer

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"

	"github.com/forestrie/go-huffman/bitbuf"
	"github.com/forestrie/go-huffman/huffman"
	"github.com/icza/bitio"
)

var (
	ErrUnknownSymbol = errors.New("packer: symbol not in code table")
	ErrClosed        = errors.New("packer: writer is closed")
)

// Stream is a packed sequence of codes. The final byte is zero padded, and
// BitLength counts only the code bits.
type Stream struct {
	Data      []byte
	BitLength uint64
}

// Padding returns the number of zero bits after the last code.
func (s Stream) Padding() uint8 {
	return uint8((8 - s.BitLength%8) % 8)
}

// Writer packs codes into an underlying io.Writer. Whole bytes are written
// as they fill; Close writes the final partial byte.
type Writer[S cmp.Ordered] struct {
	w      *bitio.Writer
	codes  huffman.Codes[S]
	bits   uint64
	closed bool
}

func NewWriter[S cmp.Ordered](w io.Writer, codes huffman.Codes[S]) *Writer[S] {
	return &Writer[S]{
		w:     bitio.NewWriter(w),
		codes: codes,
	}
}

// Write appends the code of each symbol. On error nothing further should be
// written; the stream position is undefined.
func (pw *Writer[S]) Write(symbols ...S) error {
	if pw.closed {
		return ErrClosed
	}
	for _, s := range symbols {
		code, ok := pw.codes[s]
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownSymbol, s)
		}
		if err := pw.writeCode(code); err != nil {
			return err
		}
	}
	return nil
}

func (pw *Writer[S]) writeCode(code bitbuf.Buffer) error {
	packed := code.Bytes()
	full := code.Len() / 8
	for i := 0; i < full; i++ {
		if err := pw.w.WriteByte(packed[i]); err != nil {
			return err
		}
	}
	if rem := code.Len() % 8; rem != 0 {
		if err := pw.w.WriteBits(uint64(packed[full]>>uint(8-rem)), uint8(rem)); err != nil {
			return err
		}
	}
	pw.bits += uint64(code.Len())
	return nil
}

// Bits returns the number of code bits written so far.
func (pw *Writer[S]) Bits() uint64 { return pw.bits }

// Close pads to a byte boundary and flushes. It does not close the
// underlying writer.
func (pw *Writer[S]) Close() error {
	if pw.closed {
		return nil
	}
	pw.closed = true
	return pw.w.Close()
}

// Pack encodes input with codes into a single stream.
func Pack[S cmp.Ordered](codes huffman.Codes[S], input []S) (Stream, error) {
	var buf bytes.Buffer
	pw := NewWriter(&buf, codes)
	if err := pw.Write(input...); err != nil {
		return Stream{}, err
	}
	if err := pw.Close(); err != nil {
		return Stream{}, err
	}
	return Stream{Data: buf.Bytes(), BitLength: pw.Bits()}, nil
}
