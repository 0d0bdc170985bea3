package bitbuf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRetractUnderflow = errors.New("bitbuf: retract exceeds buffer length")
	ErrBadBit           = errors.New("bitbuf: bit must be 0 or 1")
)

// Buffer is a packed, MSB-first bit sequence supporting append and
// retract at the tail.
//
// The zero value is an empty buffer ready for use.
type Buffer struct {
	packed []byte
	n      int
}

// New returns an empty buffer with room for capBits bits before the packed
// storage needs to grow.
func New(capBits int) Buffer {
	if capBits < 0 {
		capBits = 0
	}
	packed := make([]byte, 1, capBits/8+1)
	return Buffer{packed: packed}
}

// FromString parses a string of '0' and '1' characters.
func FromString(s string) (Buffer, error) {
	b := New(len(s))
	for i, c := range s {
		switch c {
		case '0':
			b.Append(0)
		case '1':
			b.Append(1)
		default:
			return Buffer{}, fmt.Errorf("%w: %q at %d", ErrBadBit, c, i)
		}
	}
	return b, nil
}

// MustFromString is FromString for literals in tests and tables.
func MustFromString(s string) Buffer {
	b, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Buffer) init() {
	if len(b.packed) == 0 {
		b.packed = make([]byte, 1)
	}
}

// Len returns the number of bits in the buffer.
func (b Buffer) Len() int { return b.n }

// Cursor returns the bit position in the current byte, 0 is the MSB.
func (b Buffer) Cursor() uint8 { return uint8(b.n % 8) }

// Append adds one bit at the tail. Any non zero value appends a 1.
func (b *Buffer) Append(bit uint8) {
	b.init()
	if bit != 0 {
		b.packed[b.n/8] |= 0x80 >> uint(b.n%8)
	}
	b.n++
	if b.n%8 == 0 {
		b.packed = append(b.packed, 0)
	}
}

// AppendBuffer appends every bit of other.
func (b *Buffer) AppendBuffer(other Buffer) {
	for i := 0; i < other.n; i++ {
		b.Append(other.bitAt(i))
	}
}

// Retract removes the last count bits.
func (b *Buffer) Retract(count int) error {
	if count < 0 || count > b.n {
		return fmt.Errorf("%w: retract %d of %d", ErrRetractUnderflow, count, b.n)
	}
	if count == 0 {
		return nil
	}
	b.n -= count
	b.packed = b.packed[:b.n/8+1]
	// keep the cursor-many leading bits of the current byte
	b.packed[b.n/8] &^= 0xff >> uint(b.n%8)
	return nil
}

// Truncate retracts the buffer to length bits. It is a no-op when the
// buffer is already at most that long.
func (b *Buffer) Truncate(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: truncate to %d", ErrRetractUnderflow, length)
	}
	if b.n <= length {
		return nil
	}
	return b.Retract(b.n - length)
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	b.init()
	b.packed = b.packed[:1]
	b.packed[0] = 0
	b.n = 0
}

// Snapshot returns an independent copy of b.
func (b Buffer) Snapshot() Buffer {
	packed := make([]byte, b.n/8+1)
	copy(packed, b.packed)
	return Buffer{packed: packed, n: b.n}
}

func (b Buffer) bitAt(i int) uint8 {
	return (b.packed[i/8] >> uint(7-i%8)) & 1
}

// Bit returns the bit at index i, where i=0 is the first bit appended.
func (b Buffer) Bit(i int) (uint8, error) {
	if i < 0 || i >= b.n {
		return 0, fmt.Errorf("bitbuf: bit index %d out of range [0,%d)", i, b.n)
	}
	return b.bitAt(i), nil
}

// Bytes returns the packed bits, padded with zeros to the next byte. The
// result has (Len()+7)/8 bytes and shares storage with b.
func (b Buffer) Bytes() []byte {
	return b.packed[:(b.n+7)/8]
}

// HasPrefix reports whether prefix is a prefix of b. Every buffer is a
// prefix of itself.
func (b Buffer) HasPrefix(prefix Buffer) bool {
	if prefix.n > b.n {
		return false
	}
	full := prefix.n / 8
	for i := 0; i < full; i++ {
		if b.packed[i] != prefix.packed[i] {
			return false
		}
	}
	rem := prefix.n % 8
	if rem == 0 {
		return true
	}
	mask := byte(0xff) << uint(8-rem)
	return b.packed[full]&mask == prefix.packed[full]
}

// Equal reports whether b and other hold the same bits.
func (b Buffer) Equal(other Buffer) bool {
	return b.n == other.n && b.HasPrefix(other)
}

func (b Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.bitAt(i) == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}
