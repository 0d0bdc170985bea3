package huffman

/*

# Huffman prefix codes

This package builds optimal binary prefix codes from symbol frequencies.

There are two steps, used in sequence:

1. `Build` merges the two lightest nodes until one remains, giving a code
   tree whose leaves are the symbols.
2. `Assign` walks the tree and derives each symbol's bit code.

`Encode` does both.

## Deterministic shape

Equal weights are common and the choice of which equal node merges first
changes the tree shape (though never the total encoded length). `Build`
removes that freedom:

- leaves are created in ascending symbol order
- internal nodes are created as they are merged
- the queue orders by weight, then by creation order

So the same frequency table always gives the same tree and the same codes.
The first node popped for a merge is the left child (bit 0) and the second
is the right child (bit 1).

## Node arena

Nodes live in a single slice owned by `Tree` and refer to their children by
`Ref`. `NoRef` marks an absent child; a leaf has two absent children and an
internal node has none absent.

## The single symbol case

A one symbol table builds a tree that is just the leaf. A zero length code
cannot be located in a packed stream, so `Assign` gives that symbol the code
"0".

*/
