package bitbuf

/*

# Bit buffers for prefix codes

This package provides a growable bit vector used to build prefix codes one
branch at a time and to hold the finished codes.

It follows the same "functional primitives" style as `go-huffman/huffman`:

- explicit byte layout
- bit position arithmetic rather than pointer manipulation
- a burden of knowledge on the caller for hot paths

## Layout

Bits are packed MSB-first. Bit index 0 is the most significant bit of the
first byte:

	bit:   0 1 2 3 4 5 6 7 | 8 9 ...
	byte:  packed[0]       | packed[1]

The packed slice always holds `Len()/8 + 1` bytes, so there is always a
current byte with at least one unwritten position. The cursor is
`Len() % 8`. Every bit at or after the cursor in the current byte is zero.

## Append and retract

`Append` writes at the cursor and moves it on, growing the packed slice by
one byte when the current byte fills. `Retract(n)` removes the last n bits
in constant time: it truncates the packed slice and clears the tail of the
new current byte. Retracting more bits than are present fails with
`ErrRetractUnderflow` and leaves the buffer unchanged.

A traversal keeps exactly one live Buffer for the current path and takes a
`Snapshot` of it for each finished code.

*/
