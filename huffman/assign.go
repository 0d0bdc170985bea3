package huffman

import (
	"cmp"
	"fmt"

	"github.com/forestrie/go-huffman/bitbuf"
)

const (
	bitLeft  = uint8(0)
	bitRight = uint8(1)
)

// frame is a pending visit. bit is the branch taken from the parent and is
// ignored for the root (depth 0).
type frame struct {
	ref   Ref
	depth int
	bit   uint8
}

// Assign derives the code for every leaf of t.
//
// The walk is depth first over an explicit stack, left child first. One
// buffer holds the path from the root to the node being visited: before a
// node at depth d appends its branch bit the buffer is retracted to d-1
// bits, undoing whatever a deeper sibling subtree left behind. Leaves take
// a snapshot, so every code is exactly as long as its leaf is deep.
//
// A tree that is a single leaf gets the one bit code "0".
func Assign[S cmp.Ordered](t *Tree[S]) (Codes[S], error) {
	root, ok := t.RootNode()
	if !ok {
		return nil, fmt.Errorf("%w: empty tree", ErrInvalidInput)
	}
	if root.IsLeaf() {
		code := bitbuf.New(1)
		code.Append(bitLeft)
		return Codes[S]{root.Symbol: code}, nil
	}

	codes := make(Codes[S], (len(t.Nodes)+1)/2)
	path := bitbuf.New(64)
	stack := []frame{{ref: t.Root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := t.node(f.ref)
		if !ok {
			return nil, fmt.Errorf("%w: dangling ref %d", ErrMalformedTree, f.ref)
		}
		if (n.Left == NoRef) != (n.Right == NoRef) {
			return nil, fmt.Errorf("%w: node %d has one child", ErrMalformedTree, f.ref)
		}

		if f.depth > 0 {
			if err := path.Truncate(f.depth - 1); err != nil {
				return nil, err
			}
			path.Append(f.bit)
		}

		if n.IsLeaf() {
			if _, dup := codes[n.Symbol]; dup {
				return nil, fmt.Errorf("%w: symbol %v appears twice", ErrMalformedTree, n.Symbol)
			}
			codes[n.Symbol] = path.Snapshot()
			continue
		}
		if f.depth+1 > len(t.Nodes) {
			return nil, fmt.Errorf("%w: cycle through node %d", ErrMalformedTree, f.ref)
		}

		stack = append(stack,
			frame{ref: n.Right, depth: f.depth + 1, bit: bitRight},
			frame{ref: n.Left, depth: f.depth + 1, bit: bitLeft},
		)
	}
	return codes, nil
}

// Encode builds the tree for freqs and assigns its codes.
func Encode[S cmp.Ordered](freqs map[S]uint64) (Codes[S], error) {
	t, err := Build(freqs)
	if err != nil {
		return nil, err
	}
	return Assign(t)
}
