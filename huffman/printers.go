package huffman

import (
	"fmt"
	"strings"
)

// debug utilities

func (t *Tree[S]) String() string {
	if _, ok := t.RootNode(); !ok {
		return "TREE{}"
	}
	var sb strings.Builder
	sb.WriteString("TREE{\n")
	t.writeNode(&sb, t.Root, "")
	sb.WriteString("}")
	return sb.String()
}

func (t *Tree[S]) writeNode(sb *strings.Builder, r Ref, indent string) {
	n, ok := t.node(r)
	if !ok {
		fmt.Fprintf(sb, "\t%s!%d\n", indent, r)
		return
	}
	if n.IsLeaf() {
		fmt.Fprintf(sb, "\t%s%d: %v@%d\n", indent, r, n.Symbol, n.Weight)
		return
	}
	fmt.Fprintf(sb, "\t%s%d: *@%d\n", indent, r, n.Weight)
	t.writeNode(sb, n.Left, indent+"  ")
	t.writeNode(sb, n.Right, indent+"  ")
}

func (c Codes[S]) String() string {
	parts := make([]string, 0, len(c))
	for _, s := range c.Symbols() {
		parts = append(parts, fmt.Sprintf("%v:%s", s, c[s]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
