package main

import (
	"fmt"

	"github.com/forestrie/go-huffman/huffman"
	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"
)

func runTree(cctx *cli.Context) error {
	freqs, err := readTable(cctx.Path("freqs"))
	if err != nil {
		return err
	}
	t, err := huffman.Build(freqs)
	if err != nil {
		return err
	}
	out, err := printTree(t)
	if err != nil {
		return err
	}
	fmt.Fprint(cctx.App.Writer, out.String())
	return nil
}

// printTree renders t with each edge labelled by its bit.
func printTree(t *huffman.Tree[rune]) (treeprint.Tree, error) {
	root, ok := t.RootNode()
	if !ok {
		return nil, huffman.ErrInvalidInput
	}
	if root.IsLeaf() {
		return treeprint.NewWithRoot(leafLabel("", root)), nil
	}
	out := treeprint.NewWithRoot(fmt.Sprintf("*@%d", root.Weight))
	addChildren(t, root, out)
	return out, nil
}

func addChildren(t *huffman.Tree[rune], n huffman.Node[rune], branch treeprint.Tree) {
	for bit, ref := range []huffman.Ref{n.Left, n.Right} {
		child := t.Nodes[ref]
		edge := fmt.Sprintf("%d ", bit)
		if child.IsLeaf() {
			branch.AddNode(leafLabel(edge, child))
			continue
		}
		addChildren(t, child, branch.AddBranch(fmt.Sprintf("%s*@%d", edge, child.Weight)))
	}
}

func leafLabel(edge string, n huffman.Node[rune]) string {
	return fmt.Sprintf("%s%q@%d", edge, n.Symbol, n.Weight)
}
