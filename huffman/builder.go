package huffman

import (
	"cmp"
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// Build constructs a Huffman code tree for the given symbol frequencies.
//
// Leaves enter the queue in ascending symbol order. Nodes of equal weight
// are taken in the order they were created, so the tree shape is a pure
// function of freqs. The first node popped becomes the left child of each
// merge and the second the right. Merging stops when one node remains.
//
// A single symbol produces a tree whose root is that leaf.
func Build[S cmp.Ordered](freqs map[S]uint64) (*Tree[S], error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: empty frequency table", ErrInvalidInput)
	}
	if uint64(len(freqs)) > uint64(NoRef)/2 {
		return nil, fmt.Errorf("%w: %d symbols exceeds the node arena", ErrInvalidInput, len(freqs))
	}

	symbols := make([]S, 0, len(freqs))
	for s, count := range freqs {
		if count == 0 {
			return nil, fmt.Errorf("%w: zero count for symbol %v", ErrInvalidInput, s)
		}
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)

	t := &Tree[S]{
		Nodes: make([]Node[S], 0, 2*len(symbols)-1),
		Root:  NoRef,
	}
	q := &nodeQueue[S]{tree: t, refs: make([]Ref, 0, len(symbols))}
	for _, s := range symbols {
		q.refs = append(q.refs, t.add(Node[S]{Weight: freqs[s], Symbol: s, Left: NoRef, Right: NoRef}))
	}
	heap.Init(q)

	for q.Len() > 1 {
		left := heap.Pop(q).(Ref)
		right := heap.Pop(q).(Ref)

		lw, rw := t.Nodes[left].Weight, t.Nodes[right].Weight
		if lw > math.MaxUint64-rw {
			return nil, fmt.Errorf("%w: total weight overflows uint64", ErrInvalidInput)
		}
		heap.Push(q, t.add(Node[S]{Weight: lw + rw, Left: left, Right: right}))
	}

	t.Root = heap.Pop(q).(Ref)
	return t, nil
}

func (t *Tree[S]) add(n Node[S]) Ref {
	t.Nodes = append(t.Nodes, n)
	return Ref(len(t.Nodes) - 1)
}

// Depths returns the depth of every leaf. The root is at depth 0.
func (t *Tree[S]) Depths() (map[S]int, error) {
	if _, ok := t.RootNode(); !ok {
		return nil, fmt.Errorf("%w: empty tree", ErrInvalidInput)
	}

	type frame struct {
		ref   Ref
		depth int
	}
	depths := make(map[S]int)
	stack := []frame{{t.Root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := t.node(f.ref)
		if !ok {
			return nil, fmt.Errorf("%w: dangling ref %d", ErrMalformedTree, f.ref)
		}
		if n.IsLeaf() {
			depths[n.Symbol] = f.depth
			continue
		}
		stack = append(stack, frame{n.Right, f.depth + 1}, frame{n.Left, f.depth + 1})
	}
	return depths, nil
}
