package huffman

import (
	"cmp"
	"errors"

	"github.com/forestrie/go-huffman/bitbuf"
)

// Ref is an index into a Tree's node arena.
type Ref uint32

const NoRef = ^Ref(0)

var (
	ErrInvalidInput  = errors.New("huffman: invalid input")
	ErrMalformedTree = errors.New("huffman: malformed tree")
	ErrNotPrefixFree = errors.New("huffman: codes are not prefix free")
	ErrUnknownSymbol = errors.New("huffman: symbol not in code table")
)

// Node is either a leaf carrying a symbol or an internal merge point with
// exactly two children.
//
// Invariant: Left == NoRef iff Right == NoRef iff the node is a leaf. Symbol
// is only meaningful for leaves; internal nodes hold the zero value.
type Node[S cmp.Ordered] struct {
	Weight uint64
	Symbol S
	Left   Ref
	Right  Ref
}

func (n Node[S]) IsLeaf() bool {
	return n.Left == NoRef && n.Right == NoRef
}

// Tree owns every node of a single code tree. Children are referenced by
// arena index, and each node other than Root has exactly one parent.
//
// Build fills the arena in creation order: leaves first, in ascending
// symbol order, then each merged node as it is made.
type Tree[S cmp.Ordered] struct {
	Nodes []Node[S]
	Root  Ref
}

// Codes maps each symbol to its finished bit code.
type Codes[S cmp.Ordered] map[S]bitbuf.Buffer

func (t *Tree[S]) node(r Ref) (Node[S], bool) {
	if r == NoRef || int(r) >= len(t.Nodes) {
		return Node[S]{}, false
	}
	return t.Nodes[r], true
}

// RootNode returns the root node, or false for an empty tree.
func (t *Tree[S]) RootNode() (Node[S], bool) {
	if t == nil {
		return Node[S]{}, false
	}
	return t.node(t.Root)
}

// Leaves returns the number of leaf nodes.
func (t *Tree[S]) Leaves() int {
	count := 0
	for _, n := range t.Nodes {
		if n.IsLeaf() {
			count++
		}
	}
	return count
}
