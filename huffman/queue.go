package huffman

import "cmp"

// nodeQueue is a container/heap min-queue of arena refs ordered by weight.
// Equal weights are ordered by ref, which is creation order.
type nodeQueue[S cmp.Ordered] struct {
	tree *Tree[S]
	refs []Ref
}

func (q *nodeQueue[S]) Len() int { return len(q.refs) }

func (q *nodeQueue[S]) Less(i, j int) bool {
	a, b := q.tree.Nodes[q.refs[i]], q.tree.Nodes[q.refs[j]]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return q.refs[i] < q.refs[j]
}

func (q *nodeQueue[S]) Swap(i, j int) { q.refs[i], q.refs[j] = q.refs[j], q.refs[i] }

func (q *nodeQueue[S]) Push(x any) { q.refs = append(q.refs, x.(Ref)) }

func (q *nodeQueue[S]) Pop() any {
	old := q.refs
	r := old[len(old)-1]
	q.refs = old[:len(old)-1]
	return r
}
